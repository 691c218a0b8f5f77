package analysis

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mango/internal/model/analysis"
)

// AnalysisRepository 分析仓库接口（供 service 层依赖）
type AnalysisRepository interface {
	Create(ctx context.Context, a *analysis.Analysis) error
	FindByID(ctx context.Context, id string) (*analysis.Analysis, error)
	List(ctx context.Context, limit, offset int64) ([]*analysis.Analysis, error)
}

// AnalysisRepo 分析仓库
type AnalysisRepo struct {
	coll *mongo.Collection
}

// NewAnalysisRepo 创建分析仓库
func NewAnalysisRepo(db *mongo.Database) *AnalysisRepo {
	var a analysis.Analysis
	return &AnalysisRepo{coll: db.Collection(a.Collection())}
}

// Create 保存分析结果
func (r *AnalysisRepo) Create(ctx context.Context, a *analysis.Analysis) error {
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	_, err := r.coll.InsertOne(ctx, a)
	return err
}

// FindByID 根据ID查询
func (r *AnalysisRepo) FindByID(ctx context.Context, id string) (*analysis.Analysis, error) {
	var a analysis.Analysis
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// List 分页查询（按创建时间倒序）
func (r *AnalysisRepo) List(ctx context.Context, limit, offset int64) ([]*analysis.Analysis, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	if offset > 0 {
		opts.SetSkip(offset)
	}
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var analyses []*analysis.Analysis
	if err := cur.All(ctx, &analyses); err != nil {
		return nil, err
	}
	return analyses, nil
}
