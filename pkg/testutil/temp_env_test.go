package testutil

import (
	"os"
	"testing"
)

const envName = "TIN_TESTUTIL_VAR"

func TestSetenv_RestoresUnset(t *testing.T) {
	os.Unsetenv(envName)
	c := &cleanuper{}
	Setenv(c, envName, "new")
	if got := os.Getenv(envName); got != "new" {
		t.Errorf("got %q, want %q", got, "new")
	}
	c.runCleanups()
	if _, ok := os.LookupEnv(envName); ok {
		t.Errorf("%s still set after cleanup", envName)
	}
}

func TestUnsetenv_RestoresValue(t *testing.T) {
	os.Setenv(envName, "old")
	defer os.Unsetenv(envName)
	c := &cleanuper{}
	Unsetenv(c, envName)
	if _, ok := os.LookupEnv(envName); ok {
		t.Errorf("%s still set after Unsetenv", envName)
	}
	c.runCleanups()
	if got := os.Getenv(envName); got != "old" {
		t.Errorf("got %q after cleanup, want %q", got, "old")
	}
}

func TestSet(t *testing.T) {
	x := 1
	c := &cleanuper{}
	Set(c, &x, 2)
	if x != 2 {
		t.Errorf("got %d, want 2", x)
	}
	c.runCleanups()
	if x != 1 {
		t.Errorf("got %d after cleanup, want 1", x)
	}
}
