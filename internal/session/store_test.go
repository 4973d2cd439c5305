package session

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/shelterops/shelter-console/internal/models"
	"github.com/shelterops/shelter-console/mocks"
)

func newStore(t *testing.T) (*Store, *mocks.MockTokenStorage, *gomock.Controller) {
	t.Helper()

	ctrl := gomock.NewController(t)
	st := mocks.NewMockTokenStorage(ctrl)

	return NewStore(st), st, ctrl
}

func TestStore_InitialState(t *testing.T) {
	t.Parallel()

	s, _, ctrl := newStore(t)
	defer ctrl.Finish()

	sess := s.Current()
	require.True(t, sess.Loading)
	require.Nil(t, sess.Tokens)
	require.Nil(t, sess.Claims)
	require.False(t, sess.Authenticated())

	_, ok := s.AccessToken()
	require.False(t, ok)
}

func TestStore_Set_CommitsPairAndClaims(t *testing.T) {
	t.Parallel()

	s, st, ctrl := newStore(t)
	defer ctrl.Finish()

	ctx := context.Background()
	pair := &models.TokenPair{Access: mintAccess(t, testClaims(42, models.RoleAdmin)), Refresh: "R1"}

	st.EXPECT().Save(gomock.Any(), pair).Return(nil)

	var notified []models.Session
	s.Subscribe(func(sess models.Session) { notified = append(notified, sess) })

	before := s.Epoch()
	require.NoError(t, s.Set(ctx, pair))
	require.Equal(t, before+1, s.Epoch())

	sess := s.Current()
	require.True(t, sess.Authenticated())
	require.Equal(t, pair.Refresh, sess.Tokens.Refresh)
	require.EqualValues(t, 42, sess.Claims.UserID)
	require.Equal(t, models.RoleAdmin, sess.Claims.Role)

	access, ok := s.AccessToken()
	require.True(t, ok)
	require.Equal(t, pair.Access, access)

	require.Len(t, notified, 1)
	require.True(t, notified[0].Authenticated())
}

// Неразбираемый access-токен — отказ без мутации: durable-хранилище
// не трогается, эпоха и состояние не меняются.
func TestStore_Set_MalformedTokenNoMutation(t *testing.T) {
	t.Parallel()

	s, _, ctrl := newStore(t)
	defer ctrl.Finish()

	before := s.Epoch()
	err := s.Set(context.Background(), &models.TokenPair{Access: "garbage", Refresh: "R1"})
	require.ErrorIs(t, err, ErrMalformedToken)
	require.Equal(t, before, s.Epoch())
	require.Nil(t, s.Current().Tokens)
}

func TestStore_Set_SaveErrorNoMutation(t *testing.T) {
	t.Parallel()

	s, st, ctrl := newStore(t)
	defer ctrl.Finish()

	pair := &models.TokenPair{Access: mintAccess(t, testClaims(1, models.RoleVolunteer)), Refresh: "R1"}
	st.EXPECT().Save(gomock.Any(), pair).Return(errors.New("disk full"))

	before := s.Epoch()
	require.Error(t, s.Set(context.Background(), pair))
	require.Equal(t, before, s.Epoch())
	require.Nil(t, s.Current().Tokens)
}

// Выход не может завершиться ошибкой: сбой удаления durable-записи
// логируется, память очищается в любом случае.
func TestStore_SetNil_ClearsDespiteStorageError(t *testing.T) {
	t.Parallel()

	s, st, ctrl := newStore(t)
	defer ctrl.Finish()

	ctx := context.Background()
	pair := &models.TokenPair{Access: mintAccess(t, testClaims(1, models.RoleAdmin)), Refresh: "R1"}

	st.EXPECT().Save(gomock.Any(), pair).Return(nil)
	require.NoError(t, s.Set(ctx, pair))

	st.EXPECT().Clear(gomock.Any()).Return(errors.New("fs read-only"))

	require.NoError(t, s.Set(ctx, nil))

	sess := s.Current()
	require.Nil(t, sess.Tokens)
	require.Nil(t, sess.Claims)
	require.False(t, sess.Authenticated())
}

func TestStore_SetIfCurrent_StaleEpochDiscarded(t *testing.T) {
	t.Parallel()

	s, st, ctrl := newStore(t)
	defer ctrl.Finish()

	ctx := context.Background()

	_, stale := s.Snapshot()

	// Конкурирующая мутация сдвигает эпоху.
	st.EXPECT().Clear(gomock.Any()).Return(nil)
	require.NoError(t, s.Set(ctx, nil))

	// Поздний результат приходит со старой эпохой — Save не вызывается.
	late := &models.TokenPair{Access: mintAccess(t, testClaims(9, models.RoleAdmin)), Refresh: "R9"}
	cur, committed, err := s.SetIfCurrent(ctx, stale, late)
	require.NoError(t, err)
	require.False(t, committed)
	require.Equal(t, s.Epoch(), cur)
	require.Nil(t, s.Current().Tokens)
}

func TestStore_SetIfCurrent_CurrentEpochCommits(t *testing.T) {
	t.Parallel()

	s, st, ctrl := newStore(t)
	defer ctrl.Finish()

	ctx := context.Background()
	pair := &models.TokenPair{Access: mintAccess(t, testClaims(5, models.RoleSubAdmin)), Refresh: "R5"}

	st.EXPECT().Save(gomock.Any(), pair).Return(nil)

	_, epoch := s.Snapshot()
	next, committed, err := s.SetIfCurrent(ctx, epoch, pair)
	require.NoError(t, err)
	require.True(t, committed)
	require.Equal(t, epoch+1, next)
	require.True(t, s.Current().Authenticated())
}

func TestStore_MarkReady_OneWay(t *testing.T) {
	t.Parallel()

	s, _, ctrl := newStore(t)
	defer ctrl.Finish()

	var calls int
	s.Subscribe(func(models.Session) { calls++ })

	s.MarkReady()
	require.False(t, s.Current().Loading)
	require.Equal(t, 1, calls)

	// Повторный вызов — no-op, подписчики не дёргаются.
	s.MarkReady()
	require.Equal(t, 1, calls)
}

// Снимок отдаёт копию пары: мутация у читателя не задевает Store.
func TestStore_SnapshotIsolation(t *testing.T) {
	t.Parallel()

	s, st, ctrl := newStore(t)
	defer ctrl.Finish()

	pair := &models.TokenPair{Access: mintAccess(t, testClaims(3, models.RoleAdmin)), Refresh: "R3"}
	st.EXPECT().Save(gomock.Any(), pair).Return(nil)
	require.NoError(t, s.Set(context.Background(), pair))

	sess := s.Current()
	sess.Tokens.Refresh = "tampered"

	require.Equal(t, "R3", s.Current().Tokens.Refresh)
}
