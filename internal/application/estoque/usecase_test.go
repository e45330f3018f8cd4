package estoque_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obratrack/obratrack-api/internal/application/dto"
	"github.com/obratrack/obratrack-api/internal/application/estoque"
	"github.com/obratrack/obratrack-api/internal/domain"
	"github.com/obratrack/obratrack-api/internal/domain/entity"
	"github.com/obratrack/obratrack-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória
// ──────────────────────────────────────────────────────────────────────────────

type fakeProdutoRepo struct {
	produtos map[string]*entity.Produto
}

func newFakeProdutoRepo() *fakeProdutoRepo {
	return &fakeProdutoRepo{produtos: map[string]*entity.Produto{}}
}

func (r *fakeProdutoRepo) Create(p *entity.Produto) error {
	for _, existente := range r.produtos {
		if existente.Ativo && existente.Codigo == p.Codigo {
			return domain.ErrDuplicate
		}
	}
	copia := *p
	r.produtos[p.ID] = &copia
	return nil
}

func (r *fakeProdutoRepo) GetByID(id string) (*entity.Produto, error) {
	p, ok := r.produtos[id]
	if !ok {
		return nil, nil
	}
	copia := *p
	return &copia, nil
}

func (r *fakeProdutoRepo) GetByIDForUpdate(id string) (*entity.Produto, error) {
	return r.GetByID(id)
}

func (r *fakeProdutoRepo) GetAtivoByCodigo(codigo string) (*entity.Produto, error) {
	for _, p := range r.produtos {
		if p.Ativo && p.Codigo == codigo {
			copia := *p
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *fakeProdutoRepo) Update(p *entity.Produto) error {
	atual, ok := r.produtos[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	// Como no banco: Update não toca o estoque.
	estoque := atual.Estoque
	copia := *p
	copia.Estoque = estoque
	r.produtos[p.ID] = &copia
	return nil
}

func (r *fakeProdutoRepo) UpdateEstoque(id string, estoque int, quando time.Time) error {
	p, ok := r.produtos[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Estoque = estoque
	p.DataAtualizacao = quando
	return nil
}

func (r *fakeProdutoRepo) ListAtivos() ([]*entity.Produto, error) {
	var out []*entity.Produto
	for _, p := range r.produtos {
		if p.Ativo {
			copia := *p
			out = append(out, &copia)
		}
	}
	return out, nil
}

func (r *fakeProdutoRepo) Desativar(id string, quando time.Time) error {
	p, ok := r.produtos[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Ativo = false
	p.DataAtualizacao = quando
	return nil
}

type fakeMovRepo struct {
	movs []*entity.Movimentacao
}

func (r *fakeMovRepo) Create(m *entity.Movimentacao) error {
	copia := *m
	r.movs = append([]*entity.Movimentacao{&copia}, r.movs...)
	return nil
}

func (r *fakeMovRepo) ListAll() ([]*entity.Movimentacao, error) {
	return r.movs, nil
}

func (r *fakeMovRepo) ListByProduto(produtoID string) ([]*entity.Movimentacao, error) {
	var out []*entity.Movimentacao
	for _, m := range r.movs {
		if m.ProdutoID == produtoID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeHistoricoRepo struct {
	registros []*entity.HistoricoAcesso
}

func (r *fakeHistoricoRepo) Create(h *entity.HistoricoAcesso) error {
	r.registros = append(r.registros, h)
	return nil
}

func (r *fakeHistoricoRepo) List(repository.FiltroHistorico) ([]*entity.HistoricoAcesso, int, error) {
	return r.registros, len(r.registros), nil
}

func (r *fakeHistoricoRepo) Delete(string) error { return nil }

func (r *fakeHistoricoRepo) DeleteAnterioresA(time.Time) (int64, error) { return 0, nil }

// fakeTxRunner executa fn diretamente sobre os fakes, sem transação real.
type fakeTxRunner struct {
	produtoRepo   *fakeProdutoRepo
	movRepo       *fakeMovRepo
	historicoRepo *fakeHistoricoRepo
}

func (tr *fakeTxRunner) Run(_ context.Context, fn func(
	produtoRepo repository.ProdutoRepository,
	movRepo repository.MovimentacaoRepository,
	historicoRepo repository.HistoricoRepository,
) error) error {
	return fn(tr.produtoRepo, tr.movRepo, tr.historicoRepo)
}

func buildUseCase() (*estoque.UseCase, *fakeProdutoRepo, *fakeMovRepo, *fakeHistoricoRepo) {
	produtoRepo := newFakeProdutoRepo()
	movRepo := &fakeMovRepo{}
	historicoRepo := &fakeHistoricoRepo{}
	tr := &fakeTxRunner{produtoRepo: produtoRepo, movRepo: movRepo, historicoRepo: historicoRepo}
	return estoque.NewUseCase(tr, produtoRepo, movRepo), produtoRepo, movRepo, historicoRepo
}

func criarProduto(t *testing.T, uc *estoque.UseCase, codigo string, estoqueInicial int) *dto.ProdutoResponse {
	t.Helper()
	out, err := uc.CriarProduto(context.Background(), dto.CreateProdutoRequest{
		Nome:          "Cimento CP-II 50kg",
		Categoria:     "Cimento",
		Codigo:        codigo,
		Estoque:       estoqueInicial,
		EstoqueMinimo: 10,
		Preco:         decimal.NewFromFloat(32.50),
		Usuario:       "joana",
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CriarProduto
// ──────────────────────────────────────────────────────────────────────────────

// Estoque inicial positivo gera exatamente uma movimentação de entrada com
// anterior 0 e atual igual ao estoque.
func TestCriarProduto_ComEstoqueInicial_GeraEntrada(t *testing.T) {
	uc, _, movRepo, historicoRepo := buildUseCase()

	out := criarProduto(t, uc, "CIM-001", 150)

	assert.Equal(t, 150, out.Estoque)
	require.Len(t, movRepo.movs, 1)
	mov := movRepo.movs[0]
	assert.Equal(t, entity.MovimentacaoEntrada, mov.Tipo)
	assert.Equal(t, 150, mov.Quantidade)
	assert.Equal(t, 0, mov.QuantidadeAnterior)
	assert.Equal(t, 150, mov.QuantidadeAtual)
	assert.Equal(t, "Estoque inicial", mov.Motivo)
	assert.Equal(t, "joana", mov.Usuario)

	// Criação também vai para a trilha de auditoria, na mesma transação.
	require.Len(t, historicoRepo.registros, 1)
	assert.Equal(t, "create", historicoRepo.registros[0].Acao)
}

// Estoque inicial zero não gera movimentação.
func TestCriarProduto_EstoqueZero_SemMovimentacao(t *testing.T) {
	uc, _, movRepo, _ := buildUseCase()

	criarProduto(t, uc, "CIM-001", 0)

	assert.Empty(t, movRepo.movs, "estoque zero não deve gerar movimentação")
}

func TestCriarProduto_CamposObrigatorios(t *testing.T) {
	uc, _, _, _ := buildUseCase()

	_, err := uc.CriarProduto(context.Background(), dto.CreateProdutoRequest{
		Nome: "Sem código nem categoria",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCriarProduto_CodigoDuplicado(t *testing.T) {
	uc, _, _, _ := buildUseCase()
	criarProduto(t, uc, "CIM-001", 10)

	_, err := uc.CriarProduto(context.Background(), dto.CreateProdutoRequest{
		Nome:      "Outro cimento",
		Categoria: "Cimento",
		Codigo:    "CIM-001",
		Preco:     decimal.NewFromInt(30),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AjustarEstoque
// ──────────────────────────────────────────────────────────────────────────────

func TestAjustarEstoque_Aumento_GeraEntrada(t *testing.T) {
	uc, _, movRepo, _ := buildUseCase()
	p := criarProduto(t, uc, "CIM-001", 100)

	produto, mov, err := uc.AjustarEstoque(context.Background(), p.ID, 130, "Reposição", "joana")
	require.NoError(t, err)

	assert.Equal(t, 130, produto.Estoque)
	require.NotNil(t, mov)
	assert.Equal(t, entity.MovimentacaoEntrada, mov.Tipo)
	assert.Equal(t, 30, mov.Quantidade)
	assert.Equal(t, 100, mov.QuantidadeAnterior)
	assert.Equal(t, 130, mov.QuantidadeAtual)
	require.Len(t, movRepo.movs, 2) // inicial + ajuste
}

func TestAjustarEstoque_Reducao_GeraSaida(t *testing.T) {
	uc, _, _, _ := buildUseCase()
	p := criarProduto(t, uc, "CIM-001", 100)

	_, mov, err := uc.AjustarEstoque(context.Background(), p.ID, 60, "Correção de contagem", "joana")
	require.NoError(t, err)

	require.NotNil(t, mov)
	assert.Equal(t, entity.MovimentacaoSaida, mov.Tipo)
	assert.Equal(t, 40, mov.Quantidade)
	assert.Equal(t, 100, mov.QuantidadeAnterior)
	assert.Equal(t, 60, mov.QuantidadeAtual)
}

// Ajustar para o mesmo valor é no-op: nenhuma movimentação gravada.
func TestAjustarEstoque_MesmoValor_NaoMovimenta(t *testing.T) {
	uc, _, movRepo, _ := buildUseCase()
	p := criarProduto(t, uc, "CIM-001", 100)

	produto, mov, err := uc.AjustarEstoque(context.Background(), p.ID, 100, "Sem mudança", "joana")
	require.NoError(t, err)

	assert.Nil(t, mov)
	assert.Equal(t, 100, produto.Estoque)
	require.Len(t, movRepo.movs, 1, "apenas a movimentação inicial deve existir")
}

func TestAjustarEstoque_ProdutoInexistente(t *testing.T) {
	uc, _, _, _ := buildUseCase()

	_, _, err := uc.AjustarEstoque(context.Background(), "nao-existe", 10, "x", "joana")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Dispensar
// ──────────────────────────────────────────────────────────────────────────────

func TestDispensar_ReduzEstoqueEGeraSaida(t *testing.T) {
	uc, produtoRepo, _, _ := buildUseCase()
	p := criarProduto(t, uc, "CIM-001", 100)

	out, err := uc.Dispensar(context.Background(), p.ID, dto.DispensarRequest{
		Quantidade:  30,
		LocalUso:    "Torre B - 3º andar",
		Solicitante: "carlos",
	})
	require.NoError(t, err)

	assert.Equal(t, 70, out.Produto.Estoque)
	assert.Equal(t, entity.MovimentacaoSaida, out.Movimentacao.Tipo)
	assert.Equal(t, 30, out.Movimentacao.Quantidade)
	assert.Equal(t, 100, out.Movimentacao.QuantidadeAnterior)
	assert.Equal(t, 70, out.Movimentacao.QuantidadeAtual)
	assert.Equal(t, "Dispensação para Torre B - 3º andar", out.Movimentacao.Motivo)
	assert.Equal(t, "carlos", out.Movimentacao.Usuario)

	persistido, err := produtoRepo.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 70, persistido.Estoque)
}

// Quantidade maior que o saldo falha sem tocar o estado.
func TestDispensar_EstoqueInsuficiente(t *testing.T) {
	uc, produtoRepo, movRepo, _ := buildUseCase()
	p := criarProduto(t, uc, "CIM-001", 20)

	_, err := uc.Dispensar(context.Background(), p.ID, dto.DispensarRequest{
		Quantidade:  50,
		LocalUso:    "Torre B",
		Solicitante: "carlos",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	persistido, err := produtoRepo.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, persistido.Estoque, "estoque não deve mudar quando a dispensação falha")
	require.Len(t, movRepo.movs, 1, "nenhuma saída deve ser gravada")
}

func TestDispensar_EntradaInvalida(t *testing.T) {
	uc, _, _, _ := buildUseCase()
	p := criarProduto(t, uc, "CIM-001", 20)

	casos := []dto.DispensarRequest{
		{Quantidade: 0, LocalUso: "Torre B", Solicitante: "carlos"},
		{Quantidade: 5, LocalUso: "", Solicitante: "carlos"},
		{Quantidade: 5, LocalUso: "Torre B", Solicitante: ""},
		{Quantidade: 5, LocalUso: "Torre B", Solicitante: "carlos", DataDispensacao: "31/12/2025"},
	}
	for i, in := range casos {
		_, err := uc.Dispensar(context.Background(), p.ID, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "caso %d", i)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante do razão: reaplicar as movimentações reconstrói o estoque
// ──────────────────────────────────────────────────────────────────────────────

func TestRazao_ReplayReconstroiEstoque(t *testing.T) {
	uc, produtoRepo, movRepo, _ := buildUseCase()
	p := criarProduto(t, uc, "CIM-001", 100)

	_, _, err := uc.AjustarEstoque(context.Background(), p.ID, 180, "Reposição", "joana")
	require.NoError(t, err)
	_, err = uc.Dispensar(context.Background(), p.ID, dto.DispensarRequest{
		Quantidade: 45, LocalUso: "Torre A", Solicitante: "carlos",
	})
	require.NoError(t, err)
	_, _, err = uc.AjustarEstoque(context.Background(), p.ID, 120, "Correção", "joana")
	require.NoError(t, err)

	movs, err := movRepo.ListByProduto(p.ID)
	require.NoError(t, err)
	require.Len(t, movs, 4)

	// Replay do mais antigo ao mais recente (a lista vem em ordem inversa).
	saldo := 0
	for i := len(movs) - 1; i >= 0; i-- {
		m := movs[i]
		require.Equal(t, saldo, m.QuantidadeAnterior,
			"a cadeia anterior/atual deve ser contígua")
		switch m.Tipo {
		case entity.MovimentacaoEntrada:
			saldo += m.Quantidade
		case entity.MovimentacaoSaida:
			saldo -= m.Quantidade
		}
		require.Equal(t, saldo, m.QuantidadeAtual)
	}

	persistido, err := produtoRepo.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, saldo, persistido.Estoque,
		"o replay das movimentações deve reconstruir o estoque atual")
	assert.Equal(t, 120, persistido.Estoque)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Movimentacoes
// ──────────────────────────────────────────────────────────────────────────────

func TestMovimentacoes_EmbuteResumoDoProduto(t *testing.T) {
	uc, _, _, _ := buildUseCase()
	p := criarProduto(t, uc, "CIM-001", 50)

	out, err := uc.Movimentacoes("")
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.NotNil(t, out[0].Produto)
	assert.Equal(t, p.ID, out[0].Produto.ID)
	assert.Equal(t, "Cimento CP-II 50kg", out[0].Produto.Nome)
	assert.Equal(t, "CIM-001", out[0].Produto.Codigo)
}

func TestMovimentacoes_FiltraPorProduto(t *testing.T) {
	uc, _, _, _ := buildUseCase()
	a := criarProduto(t, uc, "CIM-001", 50)
	criarProduto(t, uc, "ARE-002", 80)

	out, err := uc.Movimentacoes(a.ID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, a.ID, out[0].ProdutoID)

	tudo, err := uc.Movimentacoes("")
	require.NoError(t, err)
	assert.Len(t, tudo, 2)
}
