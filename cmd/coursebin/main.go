package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/coursebin/internal/cli"
	"github.com/alexanderramin/coursebin/internal/db"
	"github.com/alexanderramin/coursebin/internal/repository"
	"github.com/alexanderramin/coursebin/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.coursebin/coursebin.db
	dbPath := os.Getenv("COURSEBIN_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".coursebin", "coursebin.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	repos := service.Repos{
		Courses:      repository.NewSQLiteCourseRepo(database),
		Chapters:     repository.NewSQLiteChapterRepo(database),
		Lessons:      repository.NewSQLiteLessonRepo(database),
		Accounts:     repository.NewSQLiteAccountRepo(database),
		Enrollments:  repository.NewSQLiteEnrollmentRepo(database),
		Progress:     repository.NewSQLiteUserProgressRepo(database),
		QuizAttempts: repository.NewSQLiteQuizAttemptRepo(database),
		Certificates: repository.NewSQLiteCertificateRepo(database),
		Payments:     repository.NewSQLitePaymentTransactionRepo(database),
		Audit:        repository.NewSQLiteAuditTrailRepo(database),
	}
	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(os.Stderr)

	app := &cli.App{
		SafeDelete: service.NewSafeDeleteService(repos, uow, observer),
		RecycleBin: service.NewRecycleBinService(repos, observer),
		IsInteractive: isatty.IsTerminal(os.Stdin.Fd()) ||
			isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}

	return cli.NewRootCmd(app).Execute()
}
