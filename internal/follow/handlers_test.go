package follow

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func authAs(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	}
}

func TestFollowHandlersFollowUnfollow(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id FROM users`).
		WithArgs("author").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("author-1"))
	mock.ExpectExec(`INSERT INTO follows`).
		WithArgs("user-1", "author-1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	mock.ExpectQuery(`SELECT id FROM users`).
		WithArgs("author").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("author-1"))
	mock.ExpectExec(`DELETE FROM follows`).
		WithArgs("user-1", "author-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	app := fiber.New()
	RegisterRoutes(app, NewService(mock), authAs("user-1"))

	req := httptest.NewRequest(http.MethodPost, "/profile/author/follow", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("follow status: %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/profile/author/unfollow", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusNoContent {
		t.Fatalf("unfollow status: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFollowHandlersSelfFollow(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id FROM users`).
		WithArgs("leo").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("user-1"))

	app := fiber.New()
	RegisterRoutes(app, NewService(mock), authAs("user-1"))

	req := httptest.NewRequest(http.MethodPost, "/profile/leo/follow", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for self-follow")
	}
}

func TestFollowHandlersUnknownAuthor(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id FROM users`).
		WithArgs("ghost").
		WillReturnError(errFollow)

	app := fiber.New()
	RegisterRoutes(app, NewService(mock), authAs("user-1"))

	req := httptest.NewRequest(http.MethodPost, "/profile/ghost/unfollow", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found for unknown author")
	}
}

func TestFollowHandlersInsertError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id FROM users`).
		WithArgs("author").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("author-1"))
	mock.ExpectExec(`INSERT INTO follows`).
		WithArgs("user-1", "author-1").
		WillReturnError(errFollow)

	app := fiber.New()
	RegisterRoutes(app, NewService(mock), authAs("user-1"))

	req := httptest.NewRequest(http.MethodPost, "/profile/author/follow", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected internal error")
	}
}
