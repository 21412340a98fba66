package test

import (
	"fmt"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/tawba/internal/db"
)

var haveDB bool

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	if os.Getenv("TEST_DATABASE_URL") != "" {
		if err := db.InitTestDB("../migrations"); err != nil {
			fmt.Fprintf(os.Stderr, "test db init: %v\n", err)
			os.Exit(1)
		}
		haveDB = true
	}

	os.Exit(m.Run())
}

// requireDB skips integration tests when TEST_DATABASE_URL is not set.
func requireDB(t *testing.T) {
	t.Helper()
	if !haveDB {
		t.Skip("TEST_DATABASE_URL environment variable is not set")
	}
}
