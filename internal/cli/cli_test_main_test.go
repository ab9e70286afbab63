package cli_test

import (
	"testing"

	"gitmerge.dev/gitmerge/testhelpers"
)

func TestMain(m *testing.M) {
	testhelpers.TestMain(m, nil)
}
