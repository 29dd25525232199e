package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"travelmate-be/internal/entity"
	"travelmate-be/internal/repository/contract"
	"travelmate-be/internal/repository/specification"
	"travelmate-be/internal/repository/unitofwork"
)

// In-memory repository doubles. They interpret the same specification
// structs the gorm implementations do, so service code runs unmodified.

type fakeUow struct {
	users *fakeUserRepo
	otps  *fakeOtpRepo
	convs *fakeConversationRepo
	msgs  *fakeChatMessageRepo
	prefs *fakePreferenceRepo
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		users: &fakeUserRepo{},
		otps:  &fakeOtpRepo{},
		convs: &fakeConversationRepo{},
		msgs:  &fakeChatMessageRepo{},
		prefs: &fakePreferenceRepo{},
	}
}

func (f *fakeUow) Begin(ctx context.Context) error { return nil }
func (f *fakeUow) Commit() error                   { return nil }
func (f *fakeUow) Rollback() error                 { return nil }

func (f *fakeUow) UserRepository() contract.UserRepository                 { return f.users }
func (f *fakeUow) OtpRepository() contract.OtpRepository                   { return f.otps }
func (f *fakeUow) ConversationRepository() contract.ConversationRepository { return f.convs }
func (f *fakeUow) ChatMessageRepository() contract.ChatMessageRepository   { return f.msgs }
func (f *fakeUow) PreferenceRepository() contract.PreferenceRepository     { return f.prefs }

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

// --- user repo ---

type fakeUserRepo struct {
	users             []*entity.User
	sessions          []*entity.UserSession
	updatePasswordErr error
	passwordsByUserId map[uuid.UUID]string
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	for i, u := range r.users {
		if u.Id == user.Id {
			r.users[i] = user
			return nil
		}
	}
	return errors.New("user not found")
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, u := range r.users {
		if u.Id == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, u := range r.users {
		if matchUser(u, specs) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if matchUser(u, specs) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, userId uuid.UUID, hash string) error {
	if r.updatePasswordErr != nil {
		return r.updatePasswordErr
	}
	if r.passwordsByUserId == nil {
		r.passwordsByUserId = make(map[uuid.UUID]string)
	}
	r.passwordsByUserId[userId] = hash
	for _, u := range r.users {
		if u.Id == userId {
			u.PasswordHash = hash
		}
	}
	return nil
}

func (r *fakeUserRepo) TouchLastLogin(ctx context.Context, userId uuid.UUID) error {
	now := time.Now()
	for _, u := range r.users {
		if u.Id == userId {
			u.LastLogin = &now
		}
	}
	return nil
}

func (r *fakeUserRepo) CreateSession(ctx context.Context, session *entity.UserSession) error {
	r.sessions = append(r.sessions, session)
	return nil
}

func (r *fakeUserRepo) RevokeSession(ctx context.Context, tokenHash string) error {
	for _, s := range r.sessions {
		if s.TokenHash == tokenHash {
			s.Revoked = true
		}
	}
	return nil
}

func (r *fakeUserRepo) FindSession(ctx context.Context, specs ...specification.Specification) (*entity.UserSession, error) {
	for _, s := range r.sessions {
		ok := true
		for _, spec := range specs {
			if byHash, is := spec.(specification.ByTokenHash); is && s.TokenHash != byHash.TokenHash {
				ok = false
			}
		}
		if ok {
			return s, nil
		}
	}
	return nil, nil
}

func matchUser(u *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByEmail:
			if u.Email != s.Email {
				return false
			}
		case specification.ByID:
			if u.Id != s.ID {
				return false
			}
		}
	}
	return true
}

// --- otp repo ---

type fakeOtpRepo struct {
	records     []*entity.PasswordResetOTP
	upsertErr   error
	markUsedErr error
}

func (r *fakeOtpRepo) Upsert(ctx context.Context, record *entity.PasswordResetOTP) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	for i, existing := range r.records {
		if existing.Email == record.Email {
			r.records[i] = record
			return nil
		}
	}
	r.records = append(r.records, record)
	return nil
}

func (r *fakeOtpRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PasswordResetOTP, error) {
	for _, rec := range r.records {
		if matchOtp(rec, specs) {
			return rec, nil
		}
	}
	return nil, nil
}

func (r *fakeOtpRepo) MarkUsed(ctx context.Context, id uuid.UUID) error {
	if r.markUsedErr != nil {
		return r.markUsedErr
	}
	for _, rec := range r.records {
		if rec.Id == id {
			rec.Used = true
		}
	}
	return nil
}

func (r *fakeOtpRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var n int64
	for _, rec := range r.records {
		if matchOtp(rec, specs) {
			n++
		}
	}
	return n, nil
}

func matchOtp(rec *entity.PasswordResetOTP, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByEmail:
			if rec.Email != s.Email {
				return false
			}
		case specification.ByOtpCode:
			if rec.Otp != s.Otp {
				return false
			}
		case specification.ActiveAt:
			if rec.Used || !rec.ExpiresAt.After(s.Now) {
				return false
			}
		}
	}
	return true
}

// --- conversation repo ---

type fakeConversationRepo struct {
	conversations []*entity.Conversation
	createErr     error
	deleteErr     error
}

func (r *fakeConversationRepo) Create(ctx context.Context, c *entity.Conversation) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.conversations = append(r.conversations, c)
	return nil
}

func (r *fakeConversationRepo) Update(ctx context.Context, c *entity.Conversation) error {
	for i, existing := range r.conversations {
		if existing.Id == c.Id {
			r.conversations[i] = c
			return nil
		}
	}
	return errors.New("conversation not found")
}

func (r *fakeConversationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	for i, c := range r.conversations {
		if c.Id == id {
			r.conversations = append(r.conversations[:i], r.conversations[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeConversationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error) {
	for _, c := range r.conversations {
		if matchConversation(c, specs) {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeConversationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error) {
	var out []*entity.Conversation
	var order *specification.OrderBy
	var page *specification.Pagination
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.OrderBy:
			o := s
			order = &o
		case specification.Pagination:
			p := s
			page = &p
		}
	}
	for _, c := range r.conversations {
		if matchConversation(c, specs) {
			out = append(out, c)
		}
	}
	if order != nil && order.Field == "updated_at" {
		sort.SliceStable(out, func(i, j int) bool {
			ti := out[i].CreatedAt
			if out[i].UpdatedAt != nil {
				ti = *out[i].UpdatedAt
			}
			tj := out[j].CreatedAt
			if out[j].UpdatedAt != nil {
				tj = *out[j].UpdatedAt
			}
			if order.Desc {
				return ti.After(tj)
			}
			return ti.Before(tj)
		})
	}
	if page != nil {
		if page.Offset >= len(out) {
			return nil, nil
		}
		out = out[page.Offset:]
		if page.Limit > 0 && page.Limit < len(out) {
			out = out[:page.Limit]
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func (r *fakeConversationRepo) UpdateTitle(ctx context.Context, id uuid.UUID, title string) error {
	for _, c := range r.conversations {
		if c.Id == id {
			c.Title = title
		}
	}
	return nil
}

func (r *fakeConversationRepo) Touch(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	for _, c := range r.conversations {
		if c.Id == id {
			c.UpdatedAt = &now
		}
	}
	return nil
}

func matchConversation(c *entity.Conversation, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if c.Id != s.ID {
				return false
			}
		case specification.UserOwnedBy:
			if c.UserId != s.UserID {
				return false
			}
		case specification.SavedOnly:
			if !c.IsSaved {
				return false
			}
		}
	}
	return true
}

// --- chat message repo ---

type fakeChatMessageRepo struct {
	messages      []*entity.ChatMessage
	createBulkErr error
}

func (r *fakeChatMessageRepo) CreateBulk(ctx context.Context, messages []*entity.ChatMessage) error {
	if r.createBulkErr != nil {
		return r.createBulkErr
	}
	r.messages = append(r.messages, messages...)
	return nil
}

func (r *fakeChatMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var out []*entity.ChatMessage
	var order *specification.OrderBy
	for _, spec := range specs {
		if o, ok := spec.(specification.OrderBy); ok {
			order = &o
		}
	}
	for _, m := range r.messages {
		if matchMessage(m, specs) {
			out = append(out, m)
		}
	}
	if order != nil && order.Field == "timestamp" {
		sort.SliceStable(out, func(i, j int) bool {
			if order.Desc {
				return out[i].Timestamp.After(out[j].Timestamp)
			}
			return out[i].Timestamp.Before(out[j].Timestamp)
		})
	}
	return out, nil
}

func (r *fakeChatMessageRepo) DeleteByConversationId(ctx context.Context, conversationId uuid.UUID) error {
	var kept []*entity.ChatMessage
	for _, m := range r.messages {
		if m.ConversationId != conversationId {
			kept = append(kept, m)
		}
	}
	r.messages = kept
	return nil
}

func (r *fakeChatMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func matchMessage(m *entity.ChatMessage, specs []specification.Specification) bool {
	for _, spec := range specs {
		if s, ok := spec.(specification.ByConversationID); ok && m.ConversationId != s.ConversationID {
			return false
		}
	}
	return true
}

// --- preference repo ---

type fakePreferenceRepo struct {
	prefs []*entity.TravelPreference
}

func (r *fakePreferenceRepo) Upsert(ctx context.Context, pref *entity.TravelPreference) error {
	for i, p := range r.prefs {
		if p.UserId == pref.UserId {
			r.prefs[i] = pref
			return nil
		}
	}
	r.prefs = append(r.prefs, pref)
	return nil
}

func (r *fakePreferenceRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TravelPreference, error) {
	for _, p := range r.prefs {
		ok := true
		for _, spec := range specs {
			if s, is := spec.(specification.UserOwnedBy); is && p.UserId != s.UserID {
				ok = false
			}
		}
		if ok {
			return p, nil
		}
	}
	return nil, nil
}

// --- cooldown store ---

type fakeCooldownStore struct {
	armed map[string]time.Duration
}

func newFakeCooldownStore() *fakeCooldownStore {
	return &fakeCooldownStore{armed: make(map[string]time.Duration)}
}

func (s *fakeCooldownStore) Arm(ctx context.Context, key string, d time.Duration) error {
	s.armed[key] = d
	return nil
}

func (s *fakeCooldownStore) Remaining(ctx context.Context, key string) (time.Duration, error) {
	return s.armed[key], nil
}

// --- mail publisher ---

type fakeMailPublisher struct {
	published  [][]byte
	publishErr error
}

func (p *fakeMailPublisher) Publish(ctx context.Context, payload []byte) error {
	if p.publishErr != nil {
		return p.publishErr
	}
	p.published = append(p.published, payload)
	return nil
}

// --- logger ---

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error {
	return nil
}
