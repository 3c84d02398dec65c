//go:build integration

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/campus/internal/domain"
	"github.com/aussiebroadwan/campus/internal/store"
	"github.com/aussiebroadwan/campus/pkg/authz"
	"github.com/aussiebroadwan/campus/pkg/idx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgres starts a throwaway postgres and returns a migrated store.
func setupPostgres(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "campus",
			"POSTGRES_PASSWORD": "campus",
			"POSTGRES_DB":       "campus",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://campus:campus@%s:%s/campus?sslmode=disable", host, port.Port())
	s, err := NewStore(dsn, WithPool(4, 4, time.Minute))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Ping(ctx))
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestPostgresIntegration(t *testing.T) {
	ctx := context.Background()
	s := setupPostgres(t)

	now := time.Now().UTC()
	instructor := domain.User{
		ID: idx.New().String(), Username: "ivy", Email: "ivy@example.com",
		PasswordHash: "h", FirstName: "Ivy", LastName: "I", Role: authz.RoleInstructor, CreatedAt: now,
	}
	student := domain.User{
		ID: idx.New().String(), Username: "alice", Email: "alice@example.com",
		PasswordHash: "h", FirstName: "Alice", LastName: "A", Role: authz.RoleStudent, CreatedAt: now,
	}
	course := domain.Course{
		ID: idx.New().String(), Title: "Go 101", InstructorID: instructor.ID, CreatedAt: now, UpdatedAt: now,
	}

	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Users().CreateUser(ctx, instructor))
		require.NoError(t, tx.Users().CreateUser(ctx, student))
		require.NoError(t, tx.Courses().CreateCourse(ctx, course))
		return tx.Enrollments().CreateEnrollment(ctx, domain.Enrollment{
			UserID: student.ID, CourseID: course.ID, EnrollmentDate: now,
		})
	}))

	t.Run("role round trips through the enum", func(t *testing.T) {
		require.NoError(t, s.View(ctx, func(tx store.Tx) error {
			u, err := tx.Users().GetUserByUsername(ctx, "ivy")
			require.NoError(t, err)
			require.Equal(t, authz.RoleInstructor, u.Role)
			return nil
		}))
	})

	t.Run("duplicate enrollment", func(t *testing.T) {
		err := s.WithTx(ctx, func(tx store.Tx) error {
			return tx.Enrollments().CreateEnrollment(ctx, domain.Enrollment{
				UserID: student.ID, CourseID: course.ID, EnrollmentDate: now,
			})
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("user delete cascades", func(t *testing.T) {
		require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
			return tx.Users().DeleteUser(ctx, instructor.ID)
		}))

		require.NoError(t, s.View(ctx, func(tx store.Tx) error {
			_, err := tx.Courses().GetCourse(ctx, course.ID)
			require.ErrorIs(t, err, store.ErrNotFound)

			list, err := tx.Enrollments().ListEnrolledCourses(ctx, student.ID)
			require.NoError(t, err)
			require.Empty(t, list)
			return nil
		}))
	})
}
