package analysis

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mango/internal/pkg/scripttools"
)

// Status 分析状态
type Status string

const (
	StatusCompleted Status = "completed" // 全部场景走外部分类
	StatusPartial   Status = "partial"   // 部分场景降级到本地启发式
	StatusFallback  Status = "fallback"  // 全部场景降级到本地启发式
)

// Analysis 文档分析实体（主表）
// 一次分析对应一篇文档：切分出的场景、逐场景情感与整篇的语言/格式检测结果
type Analysis struct {
	ID string `bson:"id" json:"id"` // 分析ID（UUID）

	// 输入
	DocumentText string `bson:"document_text" json:"document_text"`                     // 文档全文
	LanguageHint string `bson:"language_hint,omitempty" json:"language_hint,omitempty"` // 调用方语言提示

	// 检测与结果
	Detection scripttools.Detection `bson:"detection" json:"detection"` // 整篇文档的语言/格式检测
	Scenes    []scripttools.Scene   `bson:"scenes" json:"scenes"`       // 场景列表（编号连续）

	// 统计
	Status         Status `bson:"status" json:"status"`                   // 分析状态
	SceneCount     int    `bson:"scene_count" json:"scene_count"`         // 场景总数
	FallbackScenes int    `bson:"fallback_scenes" json:"fallback_scenes"` // 走本地启发式路径的场景数

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Collection 返回集合名称
func (a *Analysis) Collection() string { return "analyses" }

// EnsureIndexes 创建和维护索引
func (a *Analysis) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(a.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("idx_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_created_at"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_status_created"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
