// ABOUTME: Tests for the main gcbench package, verifying project structure
// ABOUTME: These tests ensure the basic package setup is working correctly

package gcbench_test

import (
	"testing"

	"github.com/prateek/gcbench"
)

func TestProjectStructure(t *testing.T) {
	// Verify the version constant exists and is non-empty
	if gcbench.Version == "" {
		t.Error("Version constant should not be empty")
	}

	// Verify version format (should be semantic versioning)
	expectedPrefix := "0."
	if len(gcbench.Version) < len(expectedPrefix) || gcbench.Version[:len(expectedPrefix)] != expectedPrefix {
		t.Errorf("Version should start with %q, got %q", expectedPrefix, gcbench.Version)
	}
}

func TestPackageImport(t *testing.T) {
	// This test verifies that the package can be imported and used
	// The actual test is that this file compiles successfully
	t.Log("Package import successful")
}
