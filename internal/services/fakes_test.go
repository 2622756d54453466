package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"calibration-tracker/internal/entities"
	"calibration-tracker/internal/lifecycle"
	"calibration-tracker/internal/repositories"
	"calibration-tracker/pkg/constants"
	apperrors "calibration-tracker/pkg/errors"
	"calibration-tracker/pkg/eventbus"
	"calibration-tracker/pkg/service"
	"calibration-tracker/pkg/types"
)

var fixedNow = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func clockAt(t time.Time) Clock { return func() time.Time { return t } }

// ---- оборудование ----

type fakeEquipmentRepo struct {
	mu     sync.Mutex
	items  map[uint64]entities.Equipment
	nextID uint64

	listErr   error
	updateErr error
}

var _ repositories.EquipmentRepositoryInterface = (*fakeEquipmentRepo)(nil)

func newFakeEquipmentRepo(list ...entities.Equipment) *fakeEquipmentRepo {
	r := &fakeEquipmentRepo{items: map[uint64]entities.Equipment{}}
	for _, e := range list {
		r.nextID++
		if e.ID == 0 {
			e.ID = r.nextID
		}
		r.items[e.ID] = e
	}
	return r
}

func (r *fakeEquipmentRepo) sorted() []entities.Equipment {
	list := make([]entities.Equipment, 0, len(r.items))
	for id := uint64(1); id <= r.nextID; id++ {
		if e, ok := r.items[id]; ok {
			list = append(list, e)
		}
	}
	return list
}

func (r *fakeEquipmentRepo) snapshot() map[uint64]entities.Equipment {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make(map[uint64]entities.Equipment, len(r.items))
	for k, v := range r.items {
		cp[k] = v
	}
	return cp
}

func (r *fakeEquipmentRepo) restore(items map[uint64]entities.Equipment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = items
}

func (r *fakeEquipmentRepo) GetEquipments(_ context.Context, _ types.Filter) ([]entities.Equipment, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.sorted()
	return list, uint64(len(list)), r.listErr
}

func (r *fakeEquipmentRepo) ListAll(_ context.Context) ([]entities.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.sorted(), nil
}

func (r *fakeEquipmentRepo) FindOverdueCandidates(_ context.Context, now time.Time) ([]entities.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var res []entities.Equipment
	for _, e := range r.sorted() {
		if e.Status.OverdueTracked() && e.NextCalibrationDate != nil && e.NextCalibrationDate.Before(now) {
			res = append(res, e)
		}
	}
	return res, nil
}

func (r *fakeEquipmentRepo) FindEquipment(_ context.Context, id uint64) (*entities.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (r *fakeEquipmentRepo) FindEquipmentInTx(ctx context.Context, _ pgx.Tx, id uint64) (*entities.Equipment, error) {
	return r.FindEquipment(ctx, id)
}

func (r *fakeEquipmentRepo) FindBySerialNumber(_ context.Context, serial string) (*entities.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.items {
		if e.SerialNumber == serial {
			return &e, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeEquipmentRepo) CreateEquipment(_ context.Context, e *entities.Equipment) (*entities.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.SerialNumber == e.SerialNumber {
			return nil, apperrors.NewBadRequestError("Оборудование с таким серийным номером уже существует")
		}
	}
	r.nextID++
	created := *e
	created.ID = r.nextID
	r.items[created.ID] = created
	return &created, nil
}

func (r *fakeEquipmentRepo) UpdateEquipment(_ context.Context, e *entities.Equipment) (*entities.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	if _, ok := r.items[e.ID]; !ok {
		return nil, apperrors.ErrNotFound
	}
	r.items[e.ID] = *e
	saved := *e
	return &saved, nil
}

func (r *fakeEquipmentRepo) ApplyScheduleInTx(_ context.Context, _ pgx.Tx, id uint64, update lifecycle.ScheduleUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	update.ApplyTo(&e)
	r.items[id] = e
	return nil
}

func (r *fakeEquipmentRepo) AddDocument(_ context.Context, id uint64, doc entities.Document) (*entities.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	e.Documents = append(append([]entities.Document{}, e.Documents...), doc)
	r.items[id] = e
	return &e, nil
}

func (r *fakeEquipmentRepo) DeleteEquipment(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// ---- калибровки ----

type fakeCalibrationRepo struct {
	mu         sync.Mutex
	items      []entities.Calibration
	createErr  error
	lastFilter types.Filter
}

func (r *fakeCalibrationRepo) snapshot() []entities.Calibration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entities.Calibration(nil), r.items...)
}

func (r *fakeCalibrationRepo) restore(items []entities.Calibration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = items
}

func (r *fakeCalibrationRepo) CreateInTx(_ context.Context, _ pgx.Tx, c *entities.Calibration) (*entities.Calibration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	created := *c
	created.ID = uint64(len(r.items) + 1)
	created.CreatedAt = fixedNow
	r.items = append(r.items, created)
	return &created, nil
}

func (r *fakeCalibrationRepo) GetCalibrations(_ context.Context, filter types.Filter) ([]entities.Calibration, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = filter
	return append([]entities.Calibration(nil), r.items...), uint64(len(r.items)), nil
}

func (r *fakeCalibrationRepo) FindByEquipment(_ context.Context, equipmentID uint64) ([]entities.Calibration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := []entities.Calibration{}
	for _, c := range r.items {
		if c.EquipmentID == equipmentID {
			res = append(res, c)
		}
	}
	return res, nil
}

// fakeTxManager откатывает изменения фейковых репозиториев, если fn вернула ошибку.
type fakeTxManager struct {
	equipment    *fakeEquipmentRepo
	calibrations *fakeCalibrationRepo
}

func (m *fakeTxManager) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	eq := m.equipment.snapshot()
	cal := m.calibrations.snapshot()
	if err := fn(nil); err != nil {
		m.equipment.restore(eq)
		m.calibrations.restore(cal)
		return err
	}
	return nil
}

// ---- уведомления ----

type fakeNotificationRepo struct {
	mu        sync.Mutex
	items     []entities.Notification
	createErr error
	existsErr error
	// existsErrFor - ошибка проверки только для одного оборудования
	existsErrFor uint64
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *entities.Notification) (*entities.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	created := *n
	created.ID = uint64(len(r.items) + 1)
	if created.CreatedAt.IsZero() {
		created.CreatedAt = fixedNow
	}
	r.items = append(r.items, created)
	return &created, nil
}

func (r *fakeNotificationRepo) ExistsUnreadOverdue(_ context.Context, equipmentID uint64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.existsErr != nil && (r.existsErrFor == 0 || r.existsErrFor == equipmentID) {
		return false, r.existsErr
	}
	for _, n := range r.items {
		if n.EquipmentID == equipmentID && n.Type == constants.NotificationOverdue && !n.Read {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeNotificationRepo) GetNotifications(_ context.Context) ([]entities.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := append([]entities.Notification(nil), r.items...)
	for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
		res[i], res[j] = res[j], res[i]
	}
	return res, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id uint64) (*entities.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].Read = true
			n := r.items[i]
			return &n, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var updated int64
	for i := range r.items {
		if !r.items[i].Read {
			r.items[i].Read = true
			updated++
		}
	}
	return updated, nil
}

func (r *fakeNotificationRepo) Delete(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *fakeNotificationRepo) ofType(t constants.NotificationType) []entities.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []entities.Notification
	for _, n := range r.items {
		if n.Type == t {
			res = append(res, n)
		}
	}
	return res
}

// recordingNotifier запоминает всё, что сервис оборудования попросил создать.
type recordingNotifier struct {
	emitted []entities.Notification
}

func (n *recordingNotifier) Emit(_ context.Context, notification entities.Notification) {
	n.emitted = append(n.emitted, notification)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(event eventbus.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event.Name())
}

// ---- пользователи и кэш ----

type fakeUserRepo struct {
	mu     sync.Mutex
	items  map[uint64]entities.User
	nextID uint64
}

func newFakeUserRepo(users ...entities.User) *fakeUserRepo {
	r := &fakeUserRepo{items: map[uint64]entities.User{}}
	for _, u := range users {
		r.nextID++
		u.ID = r.nextID
		r.items[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetUsers(_ context.Context, _ types.Filter) ([]entities.User, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []entities.User
	for id := uint64(1); id <= r.nextID; id++ {
		if u, ok := r.items[id]; ok {
			list = append(list, u)
		}
	}
	return list, uint64(len(list)), nil
}

func (r *fakeUserRepo) FindUser(_ context.Context, id uint64) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.items {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) ExistsByEmailOrUsername(_ context.Context, email, username string, excludeID uint64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.items {
		if u.ID == excludeID {
			continue
		}
		if strings.EqualFold(u.Email, email) || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) CreateUser(_ context.Context, u *entities.User) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	created := *u
	created.ID = r.nextID
	created.CreatedAt = fixedNow
	r.items[created.ID] = created
	return &created, nil
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, u *entities.User) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[u.ID]; !ok {
		return nil, apperrors.ErrNotFound
	}
	r.items[u.ID] = *u
	saved := *u
	return &saved, nil
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string]string{}} }

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = fmt.Sprint(value)
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", repositories.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *fakeCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := strconv.ParseInt(c.data[key], 10, 64)
	n++
	c.data[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (c *fakeCache) Expire(_ context.Context, _ string, _ time.Duration) (bool, error) {
	return true, nil
}

func (c *fakeCache) TTL(_ context.Context, _ string) (time.Duration, error) {
	return 0, nil
}

type fakeJWT struct{}

var _ service.JWTService = fakeJWT{}

func (fakeJWT) GenerateToken(userID uint64, role string) (string, error) {
	return fmt.Sprintf("token-%d-%s", userID, role), nil
}

func (fakeJWT) ValidateToken(string) (*service.JwtCustomClaim, error) {
	return nil, errors.New("not implemented")
}

func (fakeJWT) GetAccessTokenTTL() time.Duration { return time.Hour }

func timePtr(t time.Time) *time.Time { return &t }

func defaultFilter() types.Filter {
	return types.Filter{Limit: 200, Page: 1, WithPagination: true}
}
