package test

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/aurumdent/goldbuy/internal/domain/errors"
	"github.com/aurumdent/goldbuy/internal/domain/model"
	"github.com/aurumdent/goldbuy/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash, Role: role}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// UpdateProfile stores contact fields on an existing user.
func (s *UserRepositoryStub) UpdateProfile(ctx context.Context, id int64, name, phone string) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.Name = name
	user.Phone = phone
	return nil
}

// AddTransaction bumps informational rollup counters.
func (s *UserRepositoryStub) AddTransaction(ctx context.Context, id int64, amount int64) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.TotalTransactions++
	user.TotalAmount += amount
	return nil
}

// PriceRepositoryStub keeps price rows keyed by date for tests.
type PriceRepositoryStub struct {
	Rows map[string]*model.PriceTable
	Next int64
	Err  error
}

// NewPriceRepositoryStub constructs stub price repository.
func NewPriceRepositoryStub() *PriceRepositoryStub {
	return &PriceRepositoryStub{Rows: make(map[string]*model.PriceTable), Next: 1}
}

func dateKey(day time.Time) string {
	return day.Format("2006-01-02")
}

// Current returns the most recent row with date not after day.
func (s *PriceRepositoryStub) Current(ctx context.Context, day time.Time) (*model.PriceTable, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var best *model.PriceTable
	for _, row := range s.Rows {
		if row.Date.After(day) {
			continue
		}
		if best == nil || row.Date.After(best.Date) {
			best = row
		}
	}
	if best == nil {
		return nil, domainErrors.ErrNotFound
	}
	copied := *best
	return &copied, nil
}

// GetByDate returns exactly the row of the given date.
func (s *PriceRepositoryStub) GetByDate(ctx context.Context, day time.Time) (*model.PriceTable, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if row, ok := s.Rows[dateKey(day)]; ok {
		copied := *row
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Upsert inserts or replaces the row for the table's date.
func (s *PriceRepositoryStub) Upsert(ctx context.Context, table *model.PriceTable) (*model.PriceTable, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	stored := *table
	if existing, ok := s.Rows[dateKey(table.Date)]; ok {
		stored.ID = existing.ID
	} else {
		stored.ID = s.Next
		s.Next++
	}
	s.Rows[dateKey(table.Date)] = &stored
	copied := stored
	return &copied, nil
}

// History returns rows newest first.
func (s *PriceRepositoryStub) History(ctx context.Context, limit int) ([]model.PriceTable, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.PriceTable
	for _, row := range s.Rows {
		result = append(result, *row)
	}
	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			if result[j].Date.After(result[i].Date) {
				result[i], result[j] = result[j], result[i]
			}
		}
	}
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// RequestRepositoryStub keeps purchase requests in-memory for tests.
type RequestRepositoryStub struct {
	Requests map[int64]*model.PurchaseRequest
	Log      []model.StatusChange
	Next     int64
	Err      error
	LogErr   error
}

// NewRequestRepositoryStub constructs stub request repository.
func NewRequestRepositoryStub() *RequestRepositoryStub {
	return &RequestRepositoryStub{Requests: make(map[int64]*model.PurchaseRequest), Next: 1}
}

// Seed stores a request directly, bypassing lifecycle rules.
func (s *RequestRepositoryStub) Seed(req *model.PurchaseRequest) *model.PurchaseRequest {
	if req.ID == 0 {
		req.ID = s.Next
		s.Next++
	}
	s.Requests[req.ID] = req
	return req
}

// Create assigns id and number, then stores the request as pending.
func (s *RequestRepositoryStub) Create(ctx context.Context, req *model.PurchaseRequest) (*model.PurchaseRequest, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	stored := *req
	stored.ID = s.Next
	stored.Number = fmt.Sprintf("GB-%06d", s.Next)
	stored.Status = model.StatusPending
	stored.CreatedAt = time.Now()
	s.Next++
	s.Requests[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

// GetByID returns a stored request or not found.
func (s *RequestRepositoryStub) GetByID(ctx context.Context, id int64) (*model.PurchaseRequest, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if req, ok := s.Requests[id]; ok {
		copied := *req
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List filters stored requests.
func (s *RequestRepositoryStub) List(ctx context.Context, filter repository.RequestFilter) ([]model.PurchaseRequest, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.PurchaseRequest
	for _, req := range s.Requests {
		if filter.UserID != nil && req.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		result = append(result, *req)
	}
	return result, nil
}

// UpdateStatus persists a new status value.
func (s *RequestRepositoryStub) UpdateStatus(ctx context.Context, id int64, status model.RequestStatus) error {
	if s.Err != nil {
		return s.Err
	}
	req, ok := s.Requests[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	req.Status = status
	return nil
}

// SetEvaluation persists evaluation outputs together with the new status.
func (s *RequestRepositoryStub) SetEvaluation(ctx context.Context, id int64, eval repository.EvaluationUpdate, status model.RequestStatus) error {
	if s.Err != nil {
		return s.Err
	}
	req, ok := s.Requests[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	weight := eval.FinalWeight
	price := eval.FinalPrice
	req.FinalWeight = &weight
	req.FinalPrice = &price
	req.EvaluationNotes = eval.Notes
	req.EvaluationImages = eval.Images
	req.Status = status
	return nil
}

// AppendStatusChange records an audit entry.
func (s *RequestRepositoryStub) AppendStatusChange(ctx context.Context, change *model.StatusChange) error {
	if s.LogErr != nil {
		return s.LogErr
	}
	entry := *change
	entry.ID = int64(len(s.Log) + 1)
	entry.ChangedAt = time.Now()
	s.Log = append(s.Log, entry)
	return nil
}

// StatusLog returns audit entries for a request.
func (s *RequestRepositoryStub) StatusLog(ctx context.Context, requestID int64) ([]model.StatusChange, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.StatusChange
	for _, entry := range s.Log {
		if entry.RequestID == requestID {
			result = append(result, entry)
		}
	}
	return result, nil
}

// SettlementRepositoryStub keeps settlements in-memory for tests.
type SettlementRepositoryStub struct {
	Settlements map[int64]*model.Settlement
	Next        int64
	Err         error
}

// NewSettlementRepositoryStub constructs stub settlement repository.
func NewSettlementRepositoryStub() *SettlementRepositoryStub {
	return &SettlementRepositoryStub{Settlements: make(map[int64]*model.Settlement), Next: 1}
}

// Create stores a settlement unless one exists for the request.
func (s *SettlementRepositoryStub) Create(ctx context.Context, settlement *model.Settlement) (*model.Settlement, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, existing := range s.Settlements {
		if existing.RequestID == settlement.RequestID {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	stored := *settlement
	stored.ID = s.Next
	stored.CreatedAt = time.Now()
	s.Next++
	s.Settlements[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

// GetByID returns a stored settlement or not found.
func (s *SettlementRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Settlement, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if settlement, ok := s.Settlements[id]; ok {
		copied := *settlement
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByRequest returns the settlement referencing the request.
func (s *SettlementRepositoryStub) GetByRequest(ctx context.Context, requestID int64) (*model.Settlement, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, settlement := range s.Settlements {
		if settlement.RequestID == requestID {
			copied := *settlement
			return &copied, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns settlements owned by the user.
func (s *SettlementRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Settlement, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Settlement
	for _, settlement := range s.Settlements {
		if settlement.UserID == userID {
			result = append(result, *settlement)
		}
	}
	return result, nil
}

// ListAll returns every stored settlement.
func (s *SettlementRepositoryStub) ListAll(ctx context.Context) ([]model.Settlement, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Settlement
	for _, settlement := range s.Settlements {
		result = append(result, *settlement)
	}
	return result, nil
}

// UpdatePaymentStatus persists a new payment state.
func (s *SettlementRepositoryStub) UpdatePaymentStatus(ctx context.Context, id int64, status model.PaymentStatus) error {
	if s.Err != nil {
		return s.Err
	}
	settlement, ok := s.Settlements[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	settlement.PaymentStatus = status
	return nil
}
