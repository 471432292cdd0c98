package repository

import (
	"strings"
	"testing"
)

func TestBuildLikeConditionByDialectSQLite(t *testing.T) {
	condition, argCount := buildLikeConditionByDialect("sqlite", []string{"name", " ", "description"})
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	if condition != "name LIKE ? OR description LIKE ?" {
		t.Fatalf("unexpected condition: %s", condition)
	}
}

func TestBuildLikeConditionByDialectPostgres(t *testing.T) {
	condition, _ := buildLikeConditionByDialect("postgres", []string{"name", "address"})
	if !strings.Contains(condition, "name ILIKE ?") || !strings.Contains(condition, "address ILIKE ?") {
		t.Fatalf("postgres should use ILIKE, got %s", condition)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%test%", 3)
	if len(args) != 3 {
		t.Fatalf("args len want 3 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%test%" {
			t.Fatalf("args[%d] want %%test%% got %v", idx, arg)
		}
	}
}
