package discovery_test

import (
	"context"
	"testing"

	"heartlink-dating-app/internal/apperrors"
	"heartlink-dating-app/internal/database"
	"heartlink-dating-app/internal/discovery"
	"heartlink-dating-app/internal/models"
	"heartlink-dating-app/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return store.New(db)
}

type seedOpts struct {
	gender     string
	age        int
	lookingFor string
	ageMin     int
	ageMax     int
	complete   bool
}

func seedUser(t *testing.T, st store.Store, email string, opts seedOpts) *models.User {
	t.Helper()
	user := &models.User{Email: &email, PasswordHash: "x", FirstName: "Test"}
	require.NoError(t, st.CreateUser(context.Background(), user))

	if opts.gender == "" {
		return user
	}
	if opts.lookingFor == "" {
		opts.lookingFor = models.LookingForEveryone
	}
	if opts.ageMin == 0 {
		opts.ageMin = 18
	}
	if opts.ageMax == 0 {
		opts.ageMax = 99
	}
	profile := &models.Profile{
		UserID:            user.ID,
		Age:               opts.age,
		Gender:            opts.gender,
		Photos:            []string{"https://example.com/p.jpg"},
		LookingFor:        opts.lookingFor,
		AgeRangeMin:       opts.ageMin,
		AgeRangeMax:       opts.ageMax,
		IsProfileComplete: opts.complete,
	}
	require.NoError(t, st.UpsertProfile(context.Background(), profile))
	return user
}

func candidateIDs(users []models.User) []string {
	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}

func TestCandidates_RequiresCompleteProfile(t *testing.T) {
	st := newTestStore(t)
	svc := discovery.NewService(st)
	ctx := context.Background()

	noProfile := seedUser(t, st, "none@example.com", seedOpts{})
	_, err := svc.Candidates(ctx, noProfile.ID, 0)
	assert.ErrorIs(t, err, apperrors.ErrProfileIncomplete)

	incomplete := seedUser(t, st, "half@example.com", seedOpts{gender: "male", age: 30, complete: false})
	_, err = svc.Candidates(ctx, incomplete.ID, 0)
	assert.ErrorIs(t, err, apperrors.ErrProfileIncomplete)
}

func TestCandidates_ExcludesSelfSwipedAndBlocked(t *testing.T) {
	st := newTestStore(t)
	svc := discovery.NewService(st)
	ctx := context.Background()

	me := seedUser(t, st, "me@example.com", seedOpts{gender: "female", age: 25, complete: true})
	swiped := seedUser(t, st, "swiped@example.com", seedOpts{gender: "male", age: 26, complete: true})
	blocker := seedUser(t, st, "blocker@example.com", seedOpts{gender: "male", age: 27, complete: true})
	fresh := seedUser(t, st, "fresh@example.com", seedOpts{gender: "male", age: 28, complete: true})

	require.NoError(t, st.CreateSwipe(ctx, &models.Swipe{
		SwiperID: me.ID, SwipedID: swiped.ID, Direction: models.DirectionPass,
	}))
	require.NoError(t, st.CreateBlock(ctx, &models.Block{BlockerID: blocker.ID, BlockedID: me.ID}))

	users, err := svc.Candidates(ctx, me.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{fresh.ID}, candidateIDs(users))
}

func TestCandidates_AppliesAgeRange(t *testing.T) {
	st := newTestStore(t)
	svc := discovery.NewService(st)
	ctx := context.Background()

	me := seedUser(t, st, "me@example.com", seedOpts{
		gender: "female", age: 25, ageMin: 25, ageMax: 35, complete: true,
	})
	tooYoung := seedUser(t, st, "young@example.com", seedOpts{gender: "male", age: 20, complete: true})
	inRange := seedUser(t, st, "mid@example.com", seedOpts{gender: "male", age: 30, complete: true})
	tooOld := seedUser(t, st, "old@example.com", seedOpts{gender: "male", age: 50, complete: true})

	users, err := svc.Candidates(ctx, me.ID, 0)
	require.NoError(t, err)
	ids := candidateIDs(users)
	assert.Contains(t, ids, inRange.ID)
	assert.NotContains(t, ids, tooYoung.ID)
	assert.NotContains(t, ids, tooOld.ID)
}

func TestCandidates_GenderPreference(t *testing.T) {
	st := newTestStore(t)
	svc := discovery.NewService(st)
	ctx := context.Background()

	me := seedUser(t, st, "me@example.com", seedOpts{
		gender: "female", age: 25, lookingFor: "male", complete: true,
	})
	man := seedUser(t, st, "man@example.com", seedOpts{gender: "male", age: 27, complete: true})
	woman := seedUser(t, st, "woman@example.com", seedOpts{gender: "female", age: 27, complete: true})

	users, err := svc.Candidates(ctx, me.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{man.ID}, candidateIDs(users))
	_ = woman
}

func TestCandidates_EveryoneSeesAllGenders(t *testing.T) {
	st := newTestStore(t)
	svc := discovery.NewService(st)
	ctx := context.Background()

	me := seedUser(t, st, "me@example.com", seedOpts{gender: "female", age: 25, complete: true})
	man := seedUser(t, st, "man@example.com", seedOpts{gender: "male", age: 27, complete: true})
	woman := seedUser(t, st, "woman@example.com", seedOpts{gender: "female", age: 27, complete: true})

	users, err := svc.Candidates(ctx, me.ID, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{man.ID, woman.ID}, candidateIDs(users))
}

func TestCandidates_HonorsLimit(t *testing.T) {
	st := newTestStore(t)
	svc := discovery.NewService(st)
	ctx := context.Background()

	me := seedUser(t, st, "me@example.com", seedOpts{gender: "female", age: 25, complete: true})
	seedUser(t, st, "a@example.com", seedOpts{gender: "male", age: 27, complete: true})
	seedUser(t, st, "b@example.com", seedOpts{gender: "male", age: 28, complete: true})
	seedUser(t, st, "c@example.com", seedOpts{gender: "male", age: 29, complete: true})

	users, err := svc.Candidates(ctx, me.ID, 2)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
