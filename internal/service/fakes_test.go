package service

import (
	"context"
	"errors"
	"fitplate/fitness-app/internal/domain"
	"fitplate/fitness-app/internal/repository"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errStoreDown = errors.New("store unavailable")

type fakeUserRepo struct {
	users     map[primitive.ObjectID]domain.User
	updateErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
	}
	id := primitive.NewObjectID()
	u := *user
	u.ID = id
	r.users[id] = u
	return id, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == domain.NormalizeEmail(email) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) UpdateCredentials(_ context.Context, user *domain.User) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	r.users[user.ID] = *user
	return nil
}

type fakeProfileRepo struct {
	profiles  map[primitive.ObjectID]domain.Profile // keyed by user
	saveErr   error
	saveCalls int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[primitive.ObjectID]domain.Profile{}}
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *domain.Profile) (primitive.ObjectID, error) {
	if r.saveErr != nil {
		return primitive.NilObjectID, r.saveErr
	}
	if _, ok := r.profiles[profile.UserID]; ok {
		return primitive.NilObjectID, repository.ErrDuplicate
	}
	p := *profile
	p.ID = primitive.NewObjectID()
	r.profiles[p.UserID] = p
	return p.ID, nil
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *fakeProfileRepo) Update(_ context.Context, profile *domain.Profile) error {
	r.saveCalls++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.profiles[profile.UserID] = *profile
	return nil
}

type dayKey struct {
	user primitive.ObjectID
	date time.Time
}

type fakeDailyGoalRepo struct {
	records map[dayKey]domain.DailyGoalRecord
	saveErr error
}

func newFakeDailyGoalRepo() *fakeDailyGoalRepo {
	return &fakeDailyGoalRepo{records: map[dayKey]domain.DailyGoalRecord{}}
}

func (r *fakeDailyGoalRepo) GetByUserAndDate(_ context.Context, userID primitive.ObjectID, date time.Time) (*domain.DailyGoalRecord, error) {
	rec, ok := r.records[dayKey{userID, date}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rec, nil
}

func (r *fakeDailyGoalRepo) Upsert(_ context.Context, record *domain.DailyGoalRecord) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	if record.ID.IsZero() {
		record.ID = primitive.NewObjectID()
	}
	r.records[dayKey{record.UserID, record.Date}] = *record
	return nil
}

func (r *fakeDailyGoalRepo) ListByUser(_ context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.DailyGoalRecord, error) {
	var out []domain.DailyGoalRecord
	for k, rec := range r.records {
		if k.user == userID && !k.date.Before(from) && !k.date.After(to) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

type fakeBoardRepo struct {
	boards    map[primitive.ObjectID]domain.GoalBoard
	saveErr   error
	saveCalls int
}

func newFakeBoardRepo() *fakeBoardRepo {
	return &fakeBoardRepo{boards: map[primitive.ObjectID]domain.GoalBoard{}}
}

func (r *fakeBoardRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*domain.GoalBoard, error) {
	b, ok := r.boards[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r *fakeBoardRepo) Save(_ context.Context, board *domain.GoalBoard) error {
	r.saveCalls++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.boards[board.UserID] = *board
	return nil
}

type fakeRoutineRepo struct {
	routines []domain.SavedRoutine
	err      error
}

func (r *fakeRoutineRepo) Create(_ context.Context, routine *domain.SavedRoutine) (primitive.ObjectID, error) {
	if r.err != nil {
		return primitive.NilObjectID, r.err
	}
	saved := *routine
	saved.ID = primitive.NewObjectID()
	r.routines = append(r.routines, saved)
	return saved.ID, nil
}

func (r *fakeRoutineRepo) GetByUserAndName(_ context.Context, userID primitive.ObjectID, name string) (*domain.SavedRoutine, error) {
	for _, s := range r.routines {
		if s.UserID == userID && s.Name == name {
			return &s, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeRoutineRepo) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.SavedRoutine, error) {
	var out []domain.SavedRoutine
	for _, s := range r.routines {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeRoutineRepo) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	list, _ := r.ListByUser(ctx, userID)
	return int64(len(list)), nil
}

type fakeStorage struct {
	deleted   []string
	deleteErr error
}

func (f *fakeStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, contentType string, _ time.Duration) (string, error) {
	return "https://storage.test/upload/" + objectKey + "?ct=" + contentType, nil
}

func (f *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/download/" + objectKey, nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return f.deleteErr
}
