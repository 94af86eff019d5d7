package queries_test

import (
	"testing"

	"neuroload/internal/core/application/usecases/queries"
	"neuroload/internal/core/domain/model/kernel"
	"neuroload/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

func TestNewGetPlanQuery(t *testing.T) {
	t.Run("should create valid query", func(t *testing.T) {
		query, err := queries.NewGetPlanQuery(kernel.NewUUID())

		require.NoError(t, err)
		require.NoError(t, query.Validate())
	})

	t.Run("should fail with zero-value order id", func(t *testing.T) {
		_, err := queries.NewGetPlanQuery(kernel.UUID{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var query queries.GetPlanQuery

		require.ErrorIs(t, query.Validate(), queries.ErrGetPlanQueryIsNotConstructed)
	})
}
