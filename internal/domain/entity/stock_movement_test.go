package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

func TestParseMovementType(t *testing.T) {
	cases := map[string]entity.MovementType{
		"entrada":           entity.MovementTypeInbound,
		" ENTRADA ":         entity.MovementTypeInbound,
		"inbound":           entity.MovementTypeInbound,
		"saída":             entity.MovementTypeOutbound,
		"sa\u0069\u0301da": entity.MovementTypeOutbound, // NFD
		"saida":             entity.MovementTypeOutbound,
		"SAÍDA":             entity.MovementTypeOutbound,
		"outbound":          entity.MovementTypeOutbound,
	}
	for in, want := range cases {
		got, ok := entity.ParseMovementType(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "ajuste", "salida"} {
		_, ok := entity.ParseMovementType(bad)
		assert.False(t, ok, bad)
	}
}
