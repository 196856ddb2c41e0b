package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/garmentix/marketplace/internal/domain/errors"
	"github.com/garmentix/marketplace/internal/domain/model"
	"github.com/garmentix/marketplace/internal/domain/repository"
)

// Pool is the subset of pgxpool.Pool used by the storage. Declared as an
// interface so pgxmock can stand in for tests.
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

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (Pool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

type userRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type trackingRepository struct {
	storage *Storage
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

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Tracking() repository.TrackingRepository {
	return &trackingRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            email TEXT PRIMARY KEY,
            role TEXT NOT NULL DEFAULT 'buyer',
            status TEXT NOT NULL DEFAULT 'active',
            display_name TEXT NOT NULL DEFAULT '',
            photo_url TEXT NOT NULL DEFAULT '',
            login_method TEXT NOT NULL DEFAULT '',
            password_hash TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id TEXT PRIMARY KEY,
            manager_email TEXT NOT NULL REFERENCES users(email),
            product_name TEXT NOT NULL,
            image TEXT NOT NULL DEFAULT '',
            category TEXT NOT NULL DEFAULT '',
            description TEXT NOT NULL DEFAULT '',
            price DOUBLE PRECISION NOT NULL,
            available_quantity INTEGER NOT NULL,
            minimum_order INTEGER NOT NULL,
            payment_options TEXT[] NOT NULL DEFAULT '{}',
            show_on_home BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            email TEXT NOT NULL,
            product_id TEXT NOT NULL,
            product_name TEXT NOT NULL,
            product_image TEXT NOT NULL DEFAULT '',
            category TEXT NOT NULL DEFAULT '',
            price_per_unit DOUBLE PRECISION NOT NULL,
            order_quantity INTEGER NOT NULL,
            total_price DOUBLE PRECISION NOT NULL,
            first_name TEXT NOT NULL DEFAULT '',
            last_name TEXT NOT NULL DEFAULT '',
            contact_number TEXT NOT NULL DEFAULT '',
            delivery_address TEXT NOT NULL DEFAULT '',
            additional_notes TEXT NOT NULL DEFAULT '',
            payment_options TEXT[] NOT NULL DEFAULT '{}',
            order_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            status TEXT NOT NULL DEFAULT 'pending',
            payment_status TEXT NOT NULL DEFAULT 'unpaid',
            payment_method TEXT NOT NULL DEFAULT '',
            approved_at TIMESTAMPTZ,
            rejected_at TIMESTAMPTZ,
            checkout_session_id TEXT NOT NULL DEFAULT '',
            transaction_id TEXT NOT NULL DEFAULT '',
            tracking_id TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS tracking_events (
            order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            seq INTEGER NOT NULL,
            status TEXT NOT NULL,
            location TEXT NOT NULL DEFAULT '',
            note TEXT NOT NULL DEFAULT '',
            event_time TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_by TEXT NOT NULL,
            PRIMARY KEY (order_id, seq)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_email ON orders(email, order_date DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_product ON orders(product_id)`,
		`CREATE INDEX IF NOT EXISTS idx_products_manager ON products(manager_email)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	const query = `INSERT INTO users (email, role, status, display_name, photo_url, login_method, password_hash)
                   VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at`
	stored := *user
	err := r.storage.pool.QueryRow(ctx, query,
		user.Email, user.Role, user.Status, user.DisplayName, user.PhotoURL, user.LoginMethod, user.PasswordHash,
	).Scan(&stored.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &stored, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT email, role, status, display_name, photo_url, login_method, password_hash, created_at
                   FROM users WHERE email=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, email).Scan(
		&u.Email, &u.Role, &u.Status, &u.DisplayName, &u.PhotoURL, &u.LoginMethod, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	const query = `SELECT email, role, status, display_name, photo_url, login_method, password_hash, created_at
                   FROM users ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.Email, &u.Role, &u.Status, &u.DisplayName, &u.PhotoURL, &u.LoginMethod, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *userRepository) UpdateRoleStatus(ctx context.Context, email string, role model.Role, status model.UserStatus) error {
	const query = `UPDATE users SET role=$1, status=$2 WHERE email=$3`
	tag, err := r.storage.pool.Exec(ctx, query, role, status, email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, email string) error {
	const query = `DELETE FROM users WHERE email=$1`
	tag, err := r.storage.pool.Exec(ctx, query, email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- ProductRepository implementation ---

const productColumns = `id, manager_email, product_name, image, category, description, price,
                        available_quantity, minimum_order, payment_options, show_on_home, created_at`

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(&p.ID, &p.ManagerEmail, &p.ProductName, &p.Image, &p.Category, &p.Description,
		&p.Price, &p.AvailableQuantity, &p.MinimumOrder, &p.PaymentOptions, &p.ShowOnHome, &p.CreatedAt)
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	const query = `INSERT INTO products (id, manager_email, product_name, image, category, description, price,
                        available_quantity, minimum_order, payment_options, show_on_home)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING created_at`
	stored := *product
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	err := r.storage.pool.QueryRow(ctx, query,
		stored.ID, stored.ManagerEmail, stored.ProductName, stored.Image, stored.Category, stored.Description,
		stored.Price, stored.AvailableQuantity, stored.MinimumOrder, stored.PaymentOptions, stored.ShowOnHome,
	).Scan(&stored.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &stored, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	var p model.Product
	if err := scanProduct(r.storage.pool.QueryRow(ctx, query, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var (
		clauses []string
		args    []any
	)
	if filter.ManagerEmail != "" {
		args = append(args, filter.ManagerEmail)
		clauses = append(clauses, fmt.Sprintf("manager_email=$%d", len(args)))
	}
	if filter.ShowOnHome != nil {
		args = append(args, *filter.ShowOnHome)
		clauses = append(clauses, fmt.Sprintf("show_on_home=$%d", len(args)))
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

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	const query = `UPDATE products SET product_name=$1, image=$2, category=$3, description=$4, price=$5,
                        available_quantity=$6, minimum_order=$7, payment_options=$8, show_on_home=$9
                   WHERE id=$10`
	tag, err := r.storage.pool.Exec(ctx, query,
		product.ProductName, product.Image, product.Category, product.Description, product.Price,
		product.AvailableQuantity, product.MinimumOrder, product.PaymentOptions, product.ShowOnHome, product.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM products WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- OrderRepository implementation ---

const orderColumns = `o.id, o.email, o.product_id, o.product_name, o.product_image, o.category,
                      o.price_per_unit, o.order_quantity, o.total_price,
                      o.first_name, o.last_name, o.contact_number, o.delivery_address, o.additional_notes,
                      o.payment_options, o.order_date, o.status, o.payment_status, o.payment_method,
                      o.approved_at, o.rejected_at, o.checkout_session_id, o.transaction_id, o.tracking_id,
                      o.created_at, o.updated_at`

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(&o.ID, &o.Email, &o.ProductID, &o.ProductName, &o.ProductImage, &o.Category,
		&o.PricePerUnit, &o.OrderQuantity, &o.TotalPrice,
		&o.FirstName, &o.LastName, &o.ContactNumber, &o.DeliveryAddress, &o.AdditionalNotes,
		&o.PaymentOptions, &o.OrderDate, &o.Status, &o.PaymentStatus, &o.PaymentMethod,
		&o.ApprovedAt, &o.RejectedAt, &o.CheckoutSessionID, &o.TransactionID, &o.TrackingID,
		&o.CreatedAt, &o.UpdatedAt)
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	const query = `INSERT INTO orders (id, email, product_id, product_name, product_image, category,
                        price_per_unit, order_quantity, total_price,
                        first_name, last_name, contact_number, delivery_address, additional_notes,
                        payment_options, order_date, status, payment_status, payment_method)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
                   RETURNING created_at, updated_at`
	stored := *order
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	err := r.storage.pool.QueryRow(ctx, query,
		stored.ID, stored.Email, stored.ProductID, stored.ProductName, stored.ProductImage, stored.Category,
		stored.PricePerUnit, stored.OrderQuantity, stored.TotalPrice,
		stored.FirstName, stored.LastName, stored.ContactNumber, stored.DeliveryAddress, stored.AdditionalNotes,
		stored.PaymentOptions, stored.OrderDate, stored.Status, stored.PaymentStatus, stored.PaymentMethod,
	).Scan(&stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &stored, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders o WHERE o.id=$1`
	var o model.Order
	if err := scanOrder(r.storage.pool.QueryRow(ctx, query, id), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) GetByCheckoutSession(ctx context.Context, sessionID string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders o WHERE o.checkout_session_id=$1`
	var o model.Order
	if err := scanOrder(r.storage.pool.QueryRow(ctx, query, sessionID), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders o`
	var (
		clauses []string
		args    []any
	)
	if filter.ManagerEmail != "" {
		query += ` JOIN products p ON p.id = o.product_id`
		args = append(args, filter.ManagerEmail)
		clauses = append(clauses, fmt.Sprintf("p.manager_email=$%d", len(args)))
	}
	if filter.Email != "" {
		args = append(args, filter.Email)
		clauses = append(clauses, fmt.Sprintf("o.email=$%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, fmt.Sprintf("o.status=$%d", len(args)))
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY o.order_date DESC"

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus, approvedAt, rejectedAt *time.Time) error {
	const query = `UPDATE orders SET status=$1,
                        approved_at=COALESCE($2, approved_at),
                        rejected_at=COALESCE($3, rejected_at),
                        updated_at=NOW()
                   WHERE id=$4`
	tag, err := r.storage.pool.Exec(ctx, query, status, approvedAt, rejectedAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) UpdatePayment(ctx context.Context, id string, status model.PaymentStatus, method, transactionID, trackingID string) error {
	const query = `UPDATE orders SET payment_status=$1, payment_method=$2,
                        transaction_id=CASE WHEN $3 <> '' THEN $3 ELSE transaction_id END,
                        tracking_id=CASE WHEN $4 <> '' THEN $4 ELSE tracking_id END,
                        updated_at=NOW()
                   WHERE id=$5`
	tag, err := r.storage.pool.Exec(ctx, query, status, method, transactionID, trackingID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) SetCheckoutSession(ctx context.Context, id, sessionID string) error {
	const query = `UPDATE orders SET checkout_session_id=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, sessionID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) (int64, error) {
	const query = `DELETE FROM orders WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *orderRepository) SelectUnreconciled(ctx context.Context, limit int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders o
              WHERE o.checkout_session_id <> '' AND LOWER(o.payment_status) <> 'paid'
              ORDER BY o.updated_at
              LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- TrackingRepository implementation ---

func (r *trackingRepository) Append(ctx context.Context, event *model.TrackingEvent) (*model.TrackingEvent, error) {
	stored := *event
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const nextSeq = `SELECT COALESCE(MAX(seq), 0) + 1 FROM tracking_events WHERE order_id=$1`
		if err := tx.QueryRow(ctx, nextSeq, event.OrderID).Scan(&stored.Seq); err != nil {
			return err
		}

		const insert = `INSERT INTO tracking_events (order_id, seq, status, location, note, event_time, updated_by)
                        VALUES ($1, $2, $3, $4, $5, $6, $7)`
		_, err := tx.Exec(ctx, insert, stored.OrderID, stored.Seq, stored.Status, stored.Location, stored.Note, stored.Timestamp, stored.UpdatedBy)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *trackingRepository) ListByOrder(ctx context.Context, orderID string) ([]model.TrackingEvent, error) {
	const query = `SELECT order_id, seq, status, location, note, event_time, updated_by
                   FROM tracking_events WHERE order_id=$1 ORDER BY seq`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.TrackingEvent
	for rows.Next() {
		var e model.TrackingEvent
		if err := rows.Scan(&e.OrderID, &e.Seq, &e.Status, &e.Location, &e.Note, &e.Timestamp, &e.UpdatedBy); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
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
