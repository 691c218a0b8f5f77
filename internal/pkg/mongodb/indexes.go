package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"mango/internal/model/analysis"
)

// EnsureIndexes 创建所有模型的索引
// 应用启动时调用，实现了 Model 接口的模型在这里注册
func EnsureIndexes(db *mongo.Database) error {
	ctx := context.Background()

	models := []Model{
		&analysis.Analysis{},
	}

	return EnsureAllIndexes(ctx, db, models...)
}
