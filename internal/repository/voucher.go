package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/voucherscan/voucher-tracker/internal/common"
	"github.com/voucherscan/voucher-tracker/internal/entity"
)

// VoucherRepository is the record store: append processed vouchers,
// list history.
type VoucherRepository interface {
	Insert(ctx context.Context, imageURL string, data *entity.ExtractedVoucherData) (*entity.VoucherRecord, error)
	ListAll(ctx context.Context) ([]*entity.VoucherRecord, error)
}

type voucherRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewVoucherRepository(pool *pgxpool.Pool, logger *zap.Logger) VoucherRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &voucherRepository{pool: pool, logger: logger}
}

func (r *voucherRepository) Insert(ctx context.Context, imageURL string, data *entity.ExtractedVoucherData) (*entity.VoucherRecord, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal extracted data: %v", common.ErrPersistence, err)
	}

	rec := &entity.VoucherRecord{
		ID:            uuid.New(),
		ImageURL:      imageURL,
		ExtractedData: *data,
		CreatedAt:     time.Now().UTC(),
		Status:        true,
	}

	const q = `
		INSERT INTO vouchers (id, image_url, extracted_data, created_at, status)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.pool.Exec(ctx, q, rec.ID, rec.ImageURL, payload, rec.CreatedAt, rec.Status); err != nil {
		r.logger.Error("insert voucher failed", zap.String("image_url", imageURL), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	r.logger.Info("voucher saved", zap.String("id", rec.ID.String()))
	return rec, nil
}

func (r *voucherRepository) ListAll(ctx context.Context) ([]*entity.VoucherRecord, error) {
	const q = `
		SELECT id, image_url, extracted_data, created_at, status
		FROM vouchers
		ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Error("list vouchers failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	defer rows.Close()

	var out []*entity.VoucherRecord
	for rows.Next() {
		var (
			rec     entity.VoucherRecord
			payload []byte
		)
		if err := rows.Scan(&rec.ID, &rec.ImageURL, &payload, &rec.CreatedAt, &rec.Status); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", common.ErrPersistence, err)
		}
		if err := json.Unmarshal(payload, &rec.ExtractedData); err != nil {
			return nil, fmt.Errorf("%w: decode extracted data: %v", common.ErrPersistence, err)
		}
		out = append(out, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	return out, nil
}
