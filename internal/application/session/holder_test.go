package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leavend/SMI-HIMPA-Client/internal/application/session"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain"
	"github.com/Leavend/SMI-HIMPA-Client/internal/domain/entity"
	pkgjwt "github.com/Leavend/SMI-HIMPA-Client/pkg/jwt"
)

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate("k", "u-7", "budi", role, "smi-test", 10)
	require.NoError(t, err)
	return tok
}

func TestRequireAdmin(t *testing.T) {
	cases := []struct {
		name string
		tok  string
		code string
	}{
		{"sinToken", "", domain.CodeMissingToken},
		{"ilegible", "basura", domain.CodeInvalidToken},
		{"borrower", token(t, entity.RoleBorrower), domain.CodeForbidden},
		{"admin", token(t, entity.RoleAdmin), ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := session.RequireAdmin(session.NewHolder(tc.tok))
			if tc.code == "" {
				assert.NoError(t, err)
				return
			}
			e, ok := domain.AsError(err)
			require.True(t, ok)
			assert.Equal(t, domain.KindPrecondition, e.Kind)
			assert.Equal(t, tc.code, e.Code)
		})
	}
}

func TestHolder_SetClear(t *testing.T) {
	h := session.NewHolder("")
	_, ok := h.User()
	assert.False(t, ok)

	tok := token(t, entity.RoleBorrower)
	h.Set(tok, &entity.User{ID: "u-7", Username: "budi"})
	u, ok := h.User()
	require.True(t, ok)
	assert.Equal(t, "budi", u.Username)
	assert.Equal(t, "u-7", session.Subject(h))

	h.Clear()
	assert.Empty(t, h.Token())
	_, err := session.Require(h)
	assert.Error(t, err)
}
