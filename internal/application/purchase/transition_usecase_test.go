package purchase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockstock/lockstock-api/internal/application/purchase"
	"github.com/lockstock/lockstock-api/internal/domain"
	"github.com/lockstock/lockstock-api/internal/domain/entity"
)

func newTransitionUC(s *fakeStore) *purchase.TransitionUseCase {
	return purchase.NewTransitionUseCase(&fakeTxRunner{s: s})
}

// Orden en draft -> sent: la única transición manual legal.
func TestTransition_DraftASent(t *testing.T) {
	s := newFakeStore()
	seedOrder(s, entity.POStatusDraft)
	uc := newTransitionUC(s)

	po, err := uc.Transition(context.Background(), memberCtx(), "po-1", entity.POStatusSent)
	require.NoError(t, err)
	assert.Equal(t, entity.POStatusSent, po.Status)
	assert.Equal(t, entity.POStatusSent, s.orders["po-1"].Status)
}

func TestTransition_IlegalesRechazadas(t *testing.T) {
	cases := []struct {
		name               string
		current, requested string
	}{
		{"sent a sent", entity.POStatusSent, entity.POStatusSent},
		{"draft a received", entity.POStatusDraft, entity.POStatusReceived},
		{"draft a partial", entity.POStatusDraft, entity.POStatusPartial},
		{"cancelled a sent", entity.POStatusCancelled, entity.POStatusSent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newFakeStore()
			seedOrder(s, tc.current)
			uc := newTransitionUC(s)

			_, err := uc.Transition(context.Background(), memberCtx(), "po-1", tc.requested)
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
			assert.Equal(t, tc.current, s.orders["po-1"].Status, "el estado no debe cambiar")
		})
	}
}

// Cancelación administrativa desde estados no terminales.
func TestTransition_Cancelacion(t *testing.T) {
	for _, status := range []string{entity.POStatusDraft, entity.POStatusSent, entity.POStatusPartial} {
		s := newFakeStore()
		seedOrder(s, status)
		uc := newTransitionUC(s)

		po, err := uc.Transition(context.Background(), memberCtx(), "po-1", entity.POStatusCancelled)
		require.NoError(t, err, "cancelar desde %s debe permitirse", status)
		assert.Equal(t, entity.POStatusCancelled, po.Status)
	}

	// Terminales: no se cancelan.
	for _, status := range []string{entity.POStatusReceived, entity.POStatusCancelled} {
		s := newFakeStore()
		seedOrder(s, status)
		uc := newTransitionUC(s)

		_, err := uc.Transition(context.Background(), memberCtx(), "po-1", entity.POStatusCancelled)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	}
}

func TestTransition_EstadoDesconocido(t *testing.T) {
	s := newFakeStore()
	seedOrder(s, entity.POStatusDraft)
	uc := newTransitionUC(s)

	_, err := uc.Transition(context.Background(), memberCtx(), "po-1", "shipped")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransition_OrdenInexistente(t *testing.T) {
	s := newFakeStore()
	uc := newTransitionUC(s)

	_, err := uc.Transition(context.Background(), memberCtx(), "po-404", entity.POStatusSent)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
