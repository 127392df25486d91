package api_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/flashcards-api/internal/domain"
	"github.com/phrazzld/flashcards-api/internal/service"
)

type mockUserService struct {
	RegisterFn     func(ctx context.Context, username, password string) (*domain.User, error)
	AuthenticateFn func(ctx context.Context, username, password string) (*domain.User, error)
	GetUserFn      func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	ListUsersFn    func(ctx context.Context) ([]*domain.User, error)
	UpdateUserFn   func(ctx context.Context, callerID, userID uuid.UUID, u service.UserUpdate) (*domain.User, error)
	DeleteUserFn   func(ctx context.Context, callerID, userID uuid.UUID) error
}

var _ service.UserService = (*mockUserService)(nil)

func (m *mockUserService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	return m.RegisterFn(ctx, username, password)
}

func (m *mockUserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	return m.AuthenticateFn(ctx, username, password)
}

func (m *mockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return m.GetUserFn(ctx, userID)
}

func (m *mockUserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return m.ListUsersFn(ctx)
}

func (m *mockUserService) UpdateUser(
	ctx context.Context,
	callerID, userID uuid.UUID,
	u service.UserUpdate,
) (*domain.User, error) {
	return m.UpdateUserFn(ctx, callerID, userID, u)
}

func (m *mockUserService) DeleteUser(ctx context.Context, callerID, userID uuid.UUID) error {
	return m.DeleteUserFn(ctx, callerID, userID)
}

type mockSetService struct {
	CreateSetFn func(ctx context.Context, ownerID uuid.UUID, name string) (*domain.FlashcardSetView, error)
	GetSetFn    func(ctx context.Context, setID uuid.UUID) (*domain.FlashcardSetView, error)
	ListSetsFn  func(ctx context.Context, ownerID uuid.UUID) ([]*domain.FlashcardSetView, error)
	RenameSetFn func(ctx context.Context, callerID, setID uuid.UUID, name string) (*domain.FlashcardSetView, error)
	DeleteSetFn func(ctx context.Context, callerID, setID uuid.UUID) error
}

var _ service.FlashcardSetService = (*mockSetService)(nil)

func (m *mockSetService) CreateSet(ctx context.Context, ownerID uuid.UUID, name string) (*domain.FlashcardSetView, error) {
	return m.CreateSetFn(ctx, ownerID, name)
}

func (m *mockSetService) GetSet(ctx context.Context, setID uuid.UUID) (*domain.FlashcardSetView, error) {
	return m.GetSetFn(ctx, setID)
}

func (m *mockSetService) ListSets(ctx context.Context, ownerID uuid.UUID) ([]*domain.FlashcardSetView, error) {
	return m.ListSetsFn(ctx, ownerID)
}

func (m *mockSetService) RenameSet(
	ctx context.Context,
	callerID, setID uuid.UUID,
	name string,
) (*domain.FlashcardSetView, error) {
	return m.RenameSetFn(ctx, callerID, setID, name)
}

func (m *mockSetService) DeleteSet(ctx context.Context, callerID, setID uuid.UUID) error {
	return m.DeleteSetFn(ctx, callerID, setID)
}

type mockCardService struct {
	CreateFn       func(ctx context.Context, ownerID, setID uuid.UUID, front, back string) (*domain.FlashcardView, error)
	GetFn          func(ctx context.Context, cardID uuid.UUID) (*domain.FlashcardView, error)
	ListFn         func(ctx context.Context, ownerID, setID uuid.UUID) ([]*domain.FlashcardView, error)
	UpdateFn       func(ctx context.Context, callerID, cardID uuid.UUID, front, back string) (*domain.FlashcardView, error)
	DeleteFn       func(ctx context.Context, callerID, cardID uuid.UUID) error
	ListBySetFn    func(ctx context.Context, setID uuid.UUID) ([]*domain.FlashcardView, error)
	LearningListFn func(ctx context.Context, setID uuid.UUID, opts service.LearningOptions) (*service.LearningSession, error)
}

var _ service.FlashcardService = (*mockCardService)(nil)

func (m *mockCardService) CreateFlashcard(
	ctx context.Context,
	ownerID, setID uuid.UUID,
	front, back string,
) (*domain.FlashcardView, error) {
	return m.CreateFn(ctx, ownerID, setID, front, back)
}

func (m *mockCardService) GetFlashcard(ctx context.Context, cardID uuid.UUID) (*domain.FlashcardView, error) {
	return m.GetFn(ctx, cardID)
}

func (m *mockCardService) ListFlashcards(ctx context.Context, ownerID, setID uuid.UUID) ([]*domain.FlashcardView, error) {
	return m.ListFn(ctx, ownerID, setID)
}

func (m *mockCardService) UpdateFlashcard(
	ctx context.Context,
	callerID, cardID uuid.UUID,
	front, back string,
) (*domain.FlashcardView, error) {
	return m.UpdateFn(ctx, callerID, cardID, front, back)
}

func (m *mockCardService) DeleteFlashcard(ctx context.Context, callerID, cardID uuid.UUID) error {
	return m.DeleteFn(ctx, callerID, cardID)
}

func (m *mockCardService) ListBySet(ctx context.Context, setID uuid.UUID) ([]*domain.FlashcardView, error) {
	return m.ListBySetFn(ctx, setID)
}

func (m *mockCardService) LearningList(
	ctx context.Context,
	setID uuid.UUID,
	opts service.LearningOptions,
) (*service.LearningSession, error) {
	return m.LearningListFn(ctx, setID, opts)
}
