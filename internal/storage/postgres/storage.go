package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/aurumdent/goldbuy/internal/domain/errors"
	"github.com/aurumdent/goldbuy/internal/domain/model"
	"github.com/aurumdent/goldbuy/internal/domain/repository"
)

// Pool abstracts pgxpool.Pool so storage can be exercised with pgxmock.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type priceRepository struct {
	storage *Storage
}

type requestRepository struct {
	storage *Storage
}

type settlementRepository struct {
	storage *Storage
}

// newPgxPool is swapped out in tests.
var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (Pool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Prices() repository.PriceRepository {
	return &priceRepository{storage: s}
}

func (s *Storage) Requests() repository.RequestRepository {
	return &requestRepository{storage: s}
}

func (s *Storage) Settlements() repository.SettlementRepository {
	return &settlementRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'customer',
            name TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            total_transactions BIGINT NOT NULL DEFAULT 0,
            total_amount BIGINT NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS price_tables (
            id SERIAL PRIMARY KEY,
            price_date DATE UNIQUE NOT NULL,
            porcelain BIGINT NOT NULL,
            inlay_small BIGINT NOT NULL,
            inlay BIGINT NOT NULL,
            crown_platinum BIGINT NOT NULL,
            crown_standard BIGINT NOT NULL,
            crown_alloy BIGINT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE SEQUENCE IF NOT EXISTS request_number_seq`,
		`CREATE TABLE IF NOT EXISTS requests (
            id SERIAL PRIMARY KEY,
            number TEXT UNIQUE NOT NULL,
            user_id BIGINT NOT NULL REFERENCES users(id),
            contact_name TEXT NOT NULL DEFAULT '',
            contact_phone TEXT NOT NULL DEFAULT '',
            address TEXT NOT NULL DEFAULT '',
            estimated_price BIGINT NOT NULL,
            status TEXT NOT NULL,
            final_weight DOUBLE PRECISION,
            final_price BIGINT,
            evaluation_notes TEXT NOT NULL DEFAULT '',
            evaluation_images TEXT[] NOT NULL DEFAULT '{}',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS request_items (
            id SERIAL PRIMARY KEY,
            request_id BIGINT NOT NULL REFERENCES requests(id),
            category TEXT NOT NULL,
            quantity INT NOT NULL,
            weight DOUBLE PRECISION,
            description TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS status_changes (
            id SERIAL PRIMARY KEY,
            request_id BIGINT NOT NULL REFERENCES requests(id),
            actor_id BIGINT NOT NULL,
            from_status TEXT NOT NULL,
            to_status TEXT NOT NULL,
            note TEXT NOT NULL DEFAULT '',
            changed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS settlements (
            id SERIAL PRIMARY KEY,
            request_id BIGINT UNIQUE NOT NULL REFERENCES requests(id),
            user_id BIGINT NOT NULL REFERENCES users(id),
            final_amount BIGINT NOT NULL,
            deduction_amount BIGINT NOT NULL DEFAULT 0,
            deduction_reason TEXT NOT NULL DEFAULT '',
            net_amount BIGINT NOT NULL,
            payment_status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_requests_user ON requests(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_requests_status ON requests(status)`,
		`CREATE INDEX IF NOT EXISTS idx_status_changes_request ON status_changes(request_id, changed_at)`,
		`CREATE INDEX IF NOT EXISTS idx_settlements_user ON settlements(user_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.User, error) {
	const query = `INSERT INTO users (login, password_hash, role) VALUES ($1, $2, $3) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash, role).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Login = login
	u.PasswordHash = passwordHash
	u.Role = role
	return &u, nil
}

const userColumns = `id, login, password_hash, role, name, phone, total_transactions, total_amount, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Role, &u.Name, &u.Phone, &u.TotalTransactions, &u.TotalAmount, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE login=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, login))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) UpdateProfile(ctx context.Context, id int64, name, phone string) error {
	const query = `UPDATE users SET name=$1, phone=$2 WHERE id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, name, phone, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) AddTransaction(ctx context.Context, id int64, amount int64) error {
	const query = `UPDATE users
                   SET total_transactions = total_transactions + 1,
                       total_amount = total_amount + $1
                   WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, amount, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- PriceRepository implementation ---

const priceColumns = `id, price_date, porcelain, inlay_small, inlay, crown_platinum, crown_standard, crown_alloy, created_at, updated_at`

func scanPriceTable(row pgx.Row) (*model.PriceTable, error) {
	var t model.PriceTable
	err := row.Scan(&t.ID, &t.Date, &t.Porcelain, &t.InlaySmall, &t.Inlay, &t.CrownPlatinum, &t.CrownStandard, &t.CrownAlloy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *priceRepository) Current(ctx context.Context, day time.Time) (*model.PriceTable, error) {
	query := `SELECT ` + priceColumns + ` FROM price_tables WHERE price_date <= $1 ORDER BY price_date DESC LIMIT 1`
	return scanPriceTable(r.storage.pool.QueryRow(ctx, query, day))
}

func (r *priceRepository) GetByDate(ctx context.Context, day time.Time) (*model.PriceTable, error) {
	query := `SELECT ` + priceColumns + ` FROM price_tables WHERE price_date = $1`
	return scanPriceTable(r.storage.pool.QueryRow(ctx, query, day))
}

func (r *priceRepository) Upsert(ctx context.Context, table *model.PriceTable) (*model.PriceTable, error) {
	const query = `INSERT INTO price_tables (price_date, porcelain, inlay_small, inlay, crown_platinum, crown_standard, crown_alloy)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   ON CONFLICT (price_date) DO UPDATE
                   SET porcelain = EXCLUDED.porcelain,
                       inlay_small = EXCLUDED.inlay_small,
                       inlay = EXCLUDED.inlay,
                       crown_platinum = EXCLUDED.crown_platinum,
                       crown_standard = EXCLUDED.crown_standard,
                       crown_alloy = EXCLUDED.crown_alloy,
                       updated_at = NOW()
                   RETURNING id, created_at, updated_at`
	stored := *table
	err := r.storage.pool.QueryRow(ctx, query,
		table.Date, table.Porcelain, table.InlaySmall, table.Inlay,
		table.CrownPlatinum, table.CrownStandard, table.CrownAlloy,
	).Scan(&stored.ID, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *priceRepository) History(ctx context.Context, limit int) ([]model.PriceTable, error) {
	query := `SELECT ` + priceColumns + ` FROM price_tables ORDER BY price_date DESC LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PriceTable
	for rows.Next() {
		var t model.PriceTable
		if err := rows.Scan(&t.ID, &t.Date, &t.Porcelain, &t.InlaySmall, &t.Inlay, &t.CrownPlatinum, &t.CrownStandard, &t.CrownAlloy, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- RequestRepository implementation ---

const requestColumns = `id, number, user_id, contact_name, contact_phone, address, estimated_price, status,
                        final_weight, final_price, evaluation_notes, evaluation_images, created_at, updated_at`

func scanRequestRow(row pgx.Row) (*model.PurchaseRequest, error) {
	var req model.PurchaseRequest
	err := row.Scan(&req.ID, &req.Number, &req.UserID, &req.ContactName, &req.ContactPhone, &req.Address,
		&req.EstimatedPrice, &req.Status, &req.FinalWeight, &req.FinalPrice,
		&req.EvaluationNotes, &req.EvaluationImages, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) Create(ctx context.Context, req *model.PurchaseRequest) (*model.PurchaseRequest, error) {
	stored := *req
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertQuery = `INSERT INTO requests (number, user_id, contact_name, contact_phone, address, estimated_price, status)
                             VALUES ('GB-' || LPAD(nextval('request_number_seq')::TEXT, 6, '0'), $1, $2, $3, $4, $5, $6)
                             RETURNING id, number, created_at, updated_at`
		err := tx.QueryRow(ctx, insertQuery,
			req.UserID, req.ContactName, req.ContactPhone, req.Address,
			req.EstimatedPrice, model.StatusPending,
		).Scan(&stored.ID, &stored.Number, &stored.CreatedAt, &stored.UpdatedAt)
		if err != nil {
			return err
		}
		stored.Status = model.StatusPending

		const itemQuery = `INSERT INTO request_items (request_id, category, quantity, weight, description)
                           VALUES ($1, $2, $3, $4, $5) RETURNING id`
		stored.Items = make([]model.GoldItem, len(req.Items))
		for i, item := range req.Items {
			stored.Items[i] = item
			stored.Items[i].RequestID = stored.ID
			if err := tx.QueryRow(ctx, itemQuery, stored.ID, item.Category, item.Quantity, item.Weight, item.Description).Scan(&stored.Items[i].ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *requestRepository) GetByID(ctx context.Context, id int64) (*model.PurchaseRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id=$1`
	req, err := scanRequestRow(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Items = items
	return req, nil
}

func (r *requestRepository) loadItems(ctx context.Context, requestID int64) ([]model.GoldItem, error) {
	const query = `SELECT id, request_id, category, quantity, weight, description
                   FROM request_items WHERE request_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.GoldItem
	for rows.Next() {
		var item model.GoldItem
		if err := rows.Scan(&item.ID, &item.RequestID, &item.Category, &item.Quantity, &item.Weight, &item.Description); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *requestRepository) List(ctx context.Context, filter repository.RequestFilter) ([]model.PurchaseRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM requests`
	var (
		clauses []string
		args    []any
	)
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PurchaseRequest
	for rows.Next() {
		var req model.PurchaseRequest
		if err := rows.Scan(&req.ID, &req.Number, &req.UserID, &req.ContactName, &req.ContactPhone, &req.Address,
			&req.EstimatedPrice, &req.Status, &req.FinalWeight, &req.FinalPrice,
			&req.EvaluationNotes, &req.EvaluationImages, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *requestRepository) UpdateStatus(ctx context.Context, id int64, status model.RequestStatus) error {
	const query = `UPDATE requests SET status=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *requestRepository) SetEvaluation(ctx context.Context, id int64, eval repository.EvaluationUpdate, status model.RequestStatus) error {
	const query = `UPDATE requests
                   SET final_weight=$1, final_price=$2, evaluation_notes=$3, evaluation_images=$4,
                       status=$5, updated_at=NOW()
                   WHERE id=$6`
	tag, err := r.storage.pool.Exec(ctx, query, eval.FinalWeight, eval.FinalPrice, eval.Notes, eval.Images, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *requestRepository) AppendStatusChange(ctx context.Context, change *model.StatusChange) error {
	const query = `INSERT INTO status_changes (request_id, actor_id, from_status, to_status, note)
                   VALUES ($1, $2, $3, $4, $5)`
	_, err := r.storage.pool.Exec(ctx, query, change.RequestID, change.ActorID, change.From, change.To, change.Note)
	return err
}

func (r *requestRepository) StatusLog(ctx context.Context, requestID int64) ([]model.StatusChange, error) {
	const query = `SELECT id, request_id, actor_id, from_status, to_status, note, changed_at
                   FROM status_changes WHERE request_id=$1 ORDER BY changed_at`
	rows, err := r.storage.pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.StatusChange
	for rows.Next() {
		var c model.StatusChange
		if err := rows.Scan(&c.ID, &c.RequestID, &c.ActorID, &c.From, &c.To, &c.Note, &c.ChangedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- SettlementRepository implementation ---

const settlementColumns = `id, request_id, user_id, final_amount, deduction_amount, deduction_reason, net_amount, payment_status, created_at, updated_at`

func scanSettlement(row pgx.Row) (*model.Settlement, error) {
	var s model.Settlement
	err := row.Scan(&s.ID, &s.RequestID, &s.UserID, &s.FinalAmount, &s.DeductionAmount, &s.DeductionReason, &s.NetAmount, &s.PaymentStatus, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *settlementRepository) Create(ctx context.Context, s *model.Settlement) (*model.Settlement, error) {
	const query = `INSERT INTO settlements (request_id, user_id, final_amount, deduction_amount, deduction_reason, net_amount, payment_status)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   RETURNING id, created_at, updated_at`
	stored := *s
	err := r.storage.pool.QueryRow(ctx, query,
		s.RequestID, s.UserID, s.FinalAmount, s.DeductionAmount, s.DeductionReason, s.NetAmount, s.PaymentStatus,
	).Scan(&stored.ID, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &stored, nil
}

func (r *settlementRepository) GetByID(ctx context.Context, id int64) (*model.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements WHERE id=$1`
	return scanSettlement(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *settlementRepository) GetByRequest(ctx context.Context, requestID int64) (*model.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements WHERE request_id=$1`
	return scanSettlement(r.storage.pool.QueryRow(ctx, query, requestID))
}

func (r *settlementRepository) listQuery(ctx context.Context, query string, args ...any) ([]model.Settlement, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Settlement
	for rows.Next() {
		var s model.Settlement
		if err := rows.Scan(&s.ID, &s.RequestID, &s.UserID, &s.FinalAmount, &s.DeductionAmount, &s.DeductionReason, &s.NetAmount, &s.PaymentStatus, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *settlementRepository) ListByUser(ctx context.Context, userID int64) ([]model.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements WHERE user_id=$1 ORDER BY created_at DESC`
	return r.listQuery(ctx, query, userID)
}

func (r *settlementRepository) ListAll(ctx context.Context) ([]model.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements ORDER BY created_at DESC`
	return r.listQuery(ctx, query)
}

func (r *settlementRepository) UpdatePaymentStatus(ctx context.Context, id int64, status model.PaymentStatus) error {
	const query = `UPDATE settlements SET payment_status=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
