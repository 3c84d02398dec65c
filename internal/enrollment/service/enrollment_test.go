package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/campus/internal/domain"
	"github.com/aussiebroadwan/campus/internal/store"
	"github.com/aussiebroadwan/campus/internal/testkit"
	"github.com/aussiebroadwan/campus/pkg/authz"
	"github.com/aussiebroadwan/campus/pkg/errx"
	"github.com/aussiebroadwan/campus/pkg/idx"
	"github.com/stretchr/testify/require"
)

func createCourse(t *testing.T, st store.Store, owner domain.User, title string, at time.Time) domain.Course {
	t.Helper()

	c := domain.Course{
		ID:           idx.NewAt(at).String(),
		Title:        title,
		InstructorID: owner.ID,
		CreatedAt:    at,
		UpdatedAt:    at,
	}
	require.NoError(t, st.WithTx(context.Background(), func(tx store.Tx) error {
		return tx.Courses().CreateCourse(context.Background(), c)
	}))
	return c
}

func countEnrollments(t *testing.T, st store.Store, courseID string) int {
	t.Helper()

	var n int
	require.NoError(t, st.View(context.Background(), func(tx store.Tx) error {
		var err error
		n, err = tx.Enrollments().CountEnrollments(context.Background(), courseID)
		return err
	}))
	return n
}

func TestEnroll(t *testing.T) {
	ctx := context.Background()
	st := testkit.Store(t)
	svc := &EnrollmentService{Store: st}

	inst := testkit.CreateUser(t, st, "inst", authz.RoleInstructor)
	alice := testkit.CreateUser(t, st, "alice", authz.RoleStudent)
	course := createCourse(t, st, inst, "Go 101", time.Now().UTC())

	e, err := svc.Enroll(ctx, testkit.Identity(alice), course.ID)
	require.NoError(t, err)
	require.Equal(t, alice.ID, e.UserID)
	require.Equal(t, course.ID, e.CourseID)
	require.WithinDuration(t, time.Now(), e.EnrollmentDate, 5*time.Second)

	t.Run("duplicate is a conflict and leaves one row", func(t *testing.T) {
		_, err := svc.Enroll(ctx, testkit.Identity(alice), course.ID)
		require.ErrorIs(t, err, ErrAlreadyEnrolled)
		require.ErrorIs(t, err, errx.ErrConflict)
		require.Equal(t, 1, countEnrollments(t, st, course.ID))
	})

	t.Run("instructors may enroll too", func(t *testing.T) {
		_, err := svc.Enroll(ctx, testkit.Identity(inst), course.ID)
		require.NoError(t, err)
	})

	t.Run("unknown course", func(t *testing.T) {
		_, err := svc.Enroll(ctx, testkit.Identity(alice), idx.New().String())
		require.ErrorIs(t, err, ErrCourseNotFound)

		_, err = svc.Enroll(ctx, testkit.Identity(alice), "bogus")
		require.ErrorIs(t, err, errx.ErrNotFound)
	})

	t.Run("anonymous", func(t *testing.T) {
		_, err := svc.Enroll(ctx, nil, course.ID)
		require.ErrorIs(t, err, errx.ErrUnauthenticated)
	})

	t.Run("deleted account", func(t *testing.T) {
		ghost := &authz.Identity{Subject: idx.New().String(), Role: authz.RoleStudent}
		_, err := svc.Enroll(ctx, ghost, course.ID)
		require.ErrorIs(t, err, ErrAccountNotFound)
	})
}

// vanishingCourseStore behaves like Postgres at READ COMMITTED when the
// course is deleted between the existence check and the insert.
type vanishingCourseStore struct{ store.Store }

func (s vanishingCourseStore) WithTx(ctx context.Context, fn store.TxFunc) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error { return fn(vanishingCourseTx{tx}) })
}

type vanishingCourseTx struct{ store.Tx }

func (t vanishingCourseTx) Enrollments() store.Enrollments {
	return fkFailingEnrollments{t.Tx.Enrollments()}
}

type fkFailingEnrollments struct{ store.Enrollments }

func (fkFailingEnrollments) CreateEnrollment(context.Context, domain.Enrollment) error {
	return fmt.Errorf("%w: enrollments_course_id_fkey", store.ErrInvalidReference)
}

func TestEnrollForeignKeyFailure(t *testing.T) {
	ctx := context.Background()
	st := testkit.Store(t)
	svc := &EnrollmentService{Store: vanishingCourseStore{st}}

	inst := testkit.CreateUser(t, st, "inst", authz.RoleInstructor)
	alice := testkit.CreateUser(t, st, "alice", authz.RoleStudent)
	course := createCourse(t, st, inst, "Go 101", time.Now().UTC())

	t.Run("course gone", func(t *testing.T) {
		_, err := svc.Enroll(ctx, testkit.Identity(alice), course.ID)
		require.ErrorIs(t, err, ErrCourseNotFound)
		require.ErrorIs(t, err, errx.ErrNotFound)
	})

	t.Run("account gone", func(t *testing.T) {
		ghost := &authz.Identity{Subject: idx.New().String(), Role: authz.RoleStudent}
		_, err := svc.Enroll(ctx, ghost, course.ID)
		require.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestEnrollRacingCourseDelete(t *testing.T) {
	ctx := context.Background()
	st := testkit.Store(t)
	svc := &EnrollmentService{Store: st}

	inst := testkit.CreateUser(t, st, "inst", authz.RoleInstructor)

	const n = 8
	students := make([]domain.User, n)
	for i := range students {
		students[i] = testkit.CreateUser(t, st, fmt.Sprintf("student%d", i), authz.RoleStudent)
	}
	course := createCourse(t, st, inst, "Go 101", time.Now().UTC())

	var (
		wg     sync.WaitGroup
		delErr error
	)
	errs := make([]error, n)
	for i, u := range students {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = svc.Enroll(ctx, testkit.Identity(u), course.ID)
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		delErr = st.WithTx(ctx, func(tx store.Tx) error {
			return tx.Courses().DeleteCourse(ctx, course.ID)
		})
	}()
	wg.Wait()

	require.NoError(t, delErr)
	for _, err := range errs {
		if err != nil {
			require.ErrorIs(t, err, ErrCourseNotFound)
		}
	}
	require.Zero(t, countEnrollments(t, st, course.ID))
}

func TestConcurrentDuplicateEnroll(t *testing.T) {
	ctx := context.Background()
	st := testkit.Store(t)
	svc := &EnrollmentService{Store: st}

	inst := testkit.CreateUser(t, st, "inst", authz.RoleInstructor)
	bob := testkit.CreateUser(t, st, "bob", authz.RoleStudent)
	course := createCourse(t, st, inst, "Go 101", time.Now().UTC())

	const n = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		conflicts int
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Enroll(ctx, testkit.Identity(bob), course.ID)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errx.KindOf(err) == errx.ErrConflict:
				conflicts++
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, ok)
	require.Equal(t, n-1, conflicts)
	require.Equal(t, 1, countEnrollments(t, st, course.ID))
}

func TestListMine(t *testing.T) {
	ctx := context.Background()
	st := testkit.Store(t)

	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := t0
	svc := &EnrollmentService{Store: st, Now: func() time.Time { return clock }}

	inst := testkit.CreateUser(t, st, "inst", authz.RoleInstructor)
	alice := testkit.CreateUser(t, st, "alice", authz.RoleStudent)
	bob := testkit.CreateUser(t, st, "bob", authz.RoleStudent)

	desc := "systems"
	first := createCourse(t, st, inst, "Go 101", t0)
	second := createCourse(t, st, inst, "Rust 101", t0.Add(time.Second))
	require.NoError(t, st.WithTx(ctx, func(tx store.Tx) error {
		second.Description = &desc
		return tx.Courses().UpdateCourse(ctx, second)
	}))

	mine, err := svc.ListMine(ctx, testkit.Identity(alice))
	require.NoError(t, err)
	require.NotNil(t, mine)
	require.Empty(t, mine)

	_, err = svc.Enroll(ctx, testkit.Identity(alice), first.ID)
	require.NoError(t, err)
	clock = t0.Add(time.Hour)
	_, err = svc.Enroll(ctx, testkit.Identity(alice), second.ID)
	require.NoError(t, err)
	_, err = svc.Enroll(ctx, testkit.Identity(bob), first.ID)
	require.NoError(t, err)

	mine, err = svc.ListMine(ctx, testkit.Identity(alice))
	require.NoError(t, err)
	require.Len(t, mine, 2)
	require.Equal(t, second.ID, mine[0].CourseID)
	require.Equal(t, "Rust 101", mine[0].Title)
	require.Equal(t, "systems", *mine[0].Description)
	require.Equal(t, inst.ID, mine[0].InstructorID)
	require.Equal(t, first.ID, mine[1].CourseID)
	require.Nil(t, mine[1].Description)

	_, err = svc.ListMine(ctx, nil)
	require.ErrorIs(t, err, errx.ErrUnauthenticated)
}
