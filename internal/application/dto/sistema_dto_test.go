package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obratrack/obratrack-api/internal/application/dto"
	"github.com/obratrack/obratrack-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// TempoRelativo
// ──────────────────────────────────────────────────────────────────────────────

func TestTempoRelativo(t *testing.T) {
	agora := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	casos := []struct {
		quando   time.Time
		esperado string
	}{
		{agora.Add(-30 * time.Second), "Agora mesmo"},
		{agora.Add(-time.Minute), "Há 1 minuto"},
		{agora.Add(-25 * time.Minute), "Há 25 minutos"},
		{agora.Add(-time.Hour), "Há 1 hora"},
		{agora.Add(-5 * time.Hour), "Há 5 horas"},
		{agora.Add(-24 * time.Hour), "Há 1 dia"},
		{agora.Add(-72 * time.Hour), "Há 3 dias"},
		{time.Time{}, "Desconhecido"},
	}
	for _, c := range casos {
		assert.Equal(t, c.esperado, dto.TempoRelativo(c.quando, agora))
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ToConfiguracaoResponse — coerção do valor pelo tipo
// ──────────────────────────────────────────────────────────────────────────────

func configCom(tipo, valor string) *entity.Configuracao {
	return &entity.Configuracao{
		ID:    "cfg-1",
		Chave: "chave_teste",
		Valor: valor,
		Tipo:  tipo,
	}
}

func TestToConfiguracaoResponse_String(t *testing.T) {
	out := dto.ToConfiguracaoResponse(configCom(entity.ConfigString, "ObraTrack"))
	assert.Equal(t, "ObraTrack", out.Valor)
}

func TestToConfiguracaoResponse_Number(t *testing.T) {
	assert.Equal(t, 90, dto.ToConfiguracaoResponse(configCom(entity.ConfigNumber, "90")).Valor)
	assert.Equal(t, 2.5, dto.ToConfiguracaoResponse(configCom(entity.ConfigNumber, "2.5")).Valor)
	assert.Equal(t, 0, dto.ToConfiguracaoResponse(configCom(entity.ConfigNumber, "abc")).Valor,
		"número inválido degrada para zero")
}

func TestToConfiguracaoResponse_Boolean(t *testing.T) {
	for _, v := range []string{"true", "1", "yes", "sim", "TRUE", "Sim"} {
		assert.Equal(t, true, dto.ToConfiguracaoResponse(configCom(entity.ConfigBoolean, v)).Valor, v)
	}
	for _, v := range []string{"false", "0", "nao", ""} {
		assert.Equal(t, false, dto.ToConfiguracaoResponse(configCom(entity.ConfigBoolean, v)).Valor, v)
	}
}

func TestToConfiguracaoResponse_JSON(t *testing.T) {
	out := dto.ToConfiguracaoResponse(configCom(entity.ConfigJSON, `{"limite": 10}`))
	require.IsType(t, map[string]any{}, out.Valor)
	assert.Equal(t, float64(10), out.Valor.(map[string]any)["limite"])

	invalido := dto.ToConfiguracaoResponse(configCom(entity.ConfigJSON, "{quebrado"))
	assert.Equal(t, map[string]any{}, invalido.Valor, "JSON inválido degrada para objeto vazio")
}

// ──────────────────────────────────────────────────────────────────────────────
// ToHistoricoResponse
// ──────────────────────────────────────────────────────────────────────────────

func TestToHistoricoResponse_DetalhesInvalidosViramObjetoVazio(t *testing.T) {
	agora := time.Now()
	out := dto.ToHistoricoResponse(&entity.HistoricoAcesso{
		ID:       "h-1",
		Usuario:  "admin",
		Acao:     "login",
		Detalhes: json.RawMessage("nao-e-json"),
		DataAcao: agora.Add(-2 * time.Hour),
	}, agora)

	assert.Equal(t, json.RawMessage("{}"), out.Detalhes)
	assert.Equal(t, "Há 2 horas", out.Tempo)
}
