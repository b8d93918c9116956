package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "credipet/pkg/domain"
	dErrors "credipet/pkg/domain-errors"
)

func TestRequireDesignated(t *testing.T) {
	authority := id.DerivePrincipal("authority")
	other := id.DerivePrincipal("other")

	require.NoError(t, RequireDesignated(authority, authority, "lending authority"))

	err := RequireDesignated(other, authority, "lending authority")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	assert.Equal(t, "caller is not the lending authority", err.Error())

	t.Run("unset designation admits nobody", func(t *testing.T) {
		err := RequireDesignated(id.ZeroPrincipal, id.ZeroPrincipal, "evolution authority")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
	})
}

func TestRequireOwner(t *testing.T) {
	owner := id.DerivePrincipal("owner")
	require.NoError(t, RequireOwner(owner, owner))
	assert.True(t, dErrors.HasCode(RequireOwner(id.DerivePrincipal("x"), owner), dErrors.CodeForbidden))
}

func TestRequireNonZero(t *testing.T) {
	require.NoError(t, RequireNonZero(id.DerivePrincipal("x")))
	err := RequireNonZero(id.ZeroPrincipal)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	assert.Equal(t, "zero address", err.Error())
}
