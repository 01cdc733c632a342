package userpayload

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignupRequestBind(t *testing.T) {
	ok := SignupRequest{Username: "alice", Password: "secret1"}
	assert.Nil(t, ok.Bind(nil))

	missing := SignupRequest{Password: "secret1"}
	assert.NotNil(t, missing.Bind(nil))

	long := SignupRequest{Username: strings.Repeat("a", 65), Password: "secret1"}
	assert.NotNil(t, long.Bind(nil))

	short := SignupRequest{Username: "alice", Password: "abc"}
	assert.NotNil(t, short.Bind(nil))
}

func TestTokenRequestBind(t *testing.T) {
	ok := TokenRequest{Username: "alice", Password: "secret1"}
	assert.Nil(t, ok.Bind(nil))

	missing := TokenRequest{Username: "alice"}
	assert.NotNil(t, missing.Bind(nil))
}
