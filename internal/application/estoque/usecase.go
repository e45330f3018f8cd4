package estoque

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/obratrack/obratrack-api/internal/application/dto"
	"github.com/obratrack/obratrack-api/internal/domain"
	"github.com/obratrack/obratrack-api/internal/domain/entity"
	"github.com/obratrack/obratrack-api/internal/domain/repository"
)

// Motivos padrão das movimentações geradas pelo sistema.
const (
	MotivoEstoqueInicial         = "Estoque inicial"
	MotivoEstoqueInicialPlanilha = "Estoque inicial via planilha"
	MotivoAjusteEdicao           = "Ajuste manual via edição"
	MotivoAtualizacaoPlanilha    = "Atualização via planilha"
)

// UsuarioSistema é o ator registrado quando a requisição não informa um.
const UsuarioSistema = "Sistema"

// UseCase é o razão de estoque: toda mudança de quantidade passa por aqui e
// gera exatamente uma movimentação na mesma transação da atualização do
// produto. A linha do produto é bloqueada (SELECT FOR UPDATE) para que as
// cadeias anterior/atual nunca se intercalem sob escrita concorrente.
type UseCase struct {
	txRunner    TxRunner
	produtoRepo repository.ProdutoRepository
	movRepo     repository.MovimentacaoRepository
}

// NewUseCase constrói o caso de uso.
func NewUseCase(txRunner TxRunner, produtoRepo repository.ProdutoRepository, movRepo repository.MovimentacaoRepository) *UseCase {
	return &UseCase{txRunner: txRunner, produtoRepo: produtoRepo, movRepo: movRepo}
}

// CriarProduto insere o produto e, se houver estoque inicial, a movimentação
// de entrada correspondente, além do registro de auditoria — tudo na mesma
// transação. Código duplicado entre ativos retorna ErrDuplicate (detectado na
// constraint, não só no pré-check).
func (uc *UseCase) CriarProduto(ctx context.Context, in dto.CreateProdutoRequest) (*dto.ProdutoResponse, error) {
	nome := strings.TrimSpace(in.Nome)
	codigo := strings.TrimSpace(in.Codigo)
	if nome == "" || strings.TrimSpace(in.Categoria) == "" || codigo == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Estoque < 0 || in.EstoqueMinimo < 0 || in.Preco.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	usuario := in.Usuario
	if usuario == "" {
		usuario = UsuarioSistema
	}
	now := time.Now()
	produto := &entity.Produto{
		ID:              uuid.New().String(),
		Nome:            nome,
		Categoria:       strings.TrimSpace(in.Categoria),
		Codigo:          codigo,
		Estoque:         in.Estoque,
		EstoqueMinimo:   in.EstoqueMinimo,
		Preco:           in.Preco,
		Unidade:         defaultUnidade(in.Unidade),
		Descricao:       strings.TrimSpace(in.Descricao),
		Ativo:           true,
		DataCriacao:     now,
		DataAtualizacao: now,
	}

	err := uc.txRunner.Run(ctx, func(
		produtoRepo repository.ProdutoRepository,
		movRepo repository.MovimentacaoRepository,
		historicoRepo repository.HistoricoRepository,
	) error {
		if _, err := CriarEmTx(produtoRepo, movRepo, produto, MotivoEstoqueInicial, usuario, now); err != nil {
			return err
		}
		return historicoRepo.Create(&entity.HistoricoAcesso{
			ID:         uuid.New().String(),
			Usuario:    usuario,
			Acao:       "create",
			Entidade:   "produto",
			EntidadeID: produto.ID,
			Descricao:  fmt.Sprintf("Produto criado: %s", produto.Nome),
			Status:     entity.HistoricoSuccess,
			DataAcao:   now,
		})
	})
	if err != nil {
		return nil, err
	}
	return dto.ToProdutoResponse(produto), nil
}

// AjustarEstoque define o estoque do produto para novoEstoque. Se a quantidade
// não muda, nenhuma movimentação é gravada; se muda, exatamente uma (entrada
// quando aumenta, saída quando diminui, quantidade = |diferença|).
func (uc *UseCase) AjustarEstoque(ctx context.Context, produtoID string, novoEstoque int, motivo, usuario string) (*entity.Produto, *entity.Movimentacao, error) {
	var (
		produto *entity.Produto
		mov     *entity.Movimentacao
	)
	err := uc.txRunner.Run(ctx, func(
		produtoRepo repository.ProdutoRepository,
		movRepo repository.MovimentacaoRepository,
		_ repository.HistoricoRepository,
	) error {
		var err error
		produto, mov, err = AjustarEmTx(produtoRepo, movRepo, produtoID, novoEstoque, motivo, usuario, time.Now())
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return produto, mov, nil
}

// Dispensar retira quantidade do estoque para uso em obra. Falha com
// ErrInsufficientStock sem tocar o estado quando a quantidade pedida excede o
// disponível; o estoque nunca fica negativo por este caminho.
func (uc *UseCase) Dispensar(ctx context.Context, produtoID string, in dto.DispensarRequest) (*dto.DispensarResponse, error) {
	if in.Quantidade <= 0 || in.LocalUso == "" || in.Solicitante == "" {
		return nil, domain.ErrInvalidInput
	}
	dataMov := time.Now()
	if in.DataDispensacao != "" {
		d, err := time.Parse("2006-01-02", in.DataDispensacao)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		dataMov = d
	}

	var (
		produto *entity.Produto
		mov     *entity.Movimentacao
	)
	err := uc.txRunner.Run(ctx, func(
		produtoRepo repository.ProdutoRepository,
		movRepo repository.MovimentacaoRepository,
		_ repository.HistoricoRepository,
	) error {
		var err error
		produto, err = produtoRepo.GetByIDForUpdate(produtoID)
		if err != nil {
			return err
		}
		if produto == nil {
			return domain.ErrNotFound
		}
		if produto.Estoque < in.Quantidade {
			return domain.ErrInsufficientStock
		}
		anterior := produto.Estoque
		produto.Estoque -= in.Quantidade
		produto.DataAtualizacao = time.Now()
		if err := produtoRepo.UpdateEstoque(produto.ID, produto.Estoque, produto.DataAtualizacao); err != nil {
			return err
		}
		mov = &entity.Movimentacao{
			ID:                 uuid.New().String(),
			ProdutoID:          produto.ID,
			Tipo:               entity.MovimentacaoSaida,
			Quantidade:         in.Quantidade,
			QuantidadeAnterior: anterior,
			QuantidadeAtual:    produto.Estoque,
			Motivo:             fmt.Sprintf("Dispensação para %s", in.LocalUso),
			Usuario:            in.Solicitante,
			DataMovimentacao:   dataMov,
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return &dto.DispensarResponse{
		Message:      "Produto dispensado com sucesso",
		Produto:      *dto.ToProdutoResponse(produto),
		Movimentacao: *dto.ToMovimentacaoResponse(mov, produto),
	}, nil
}

// Movimentacoes projeta o razão, da movimentação mais recente para a mais
// antiga, com o resumo do produto embutido. produtoID vazio lista todas.
func (uc *UseCase) Movimentacoes(produtoID string) ([]dto.MovimentacaoResponse, error) {
	var (
		movs []*entity.Movimentacao
		err  error
	)
	if produtoID == "" {
		movs, err = uc.movRepo.ListAll()
	} else {
		movs, err = uc.movRepo.ListByProduto(produtoID)
	}
	if err != nil {
		return nil, err
	}
	produtos := map[string]*entity.Produto{}
	out := make([]dto.MovimentacaoResponse, 0, len(movs))
	for _, m := range movs {
		p, ok := produtos[m.ProdutoID]
		if !ok {
			p, err = uc.produtoRepo.GetByID(m.ProdutoID)
			if err != nil {
				return nil, err
			}
			produtos[m.ProdutoID] = p
		}
		out = append(out, *dto.ToMovimentacaoResponse(m, p))
	}
	return out, nil
}

// CriarEmTx insere produto e movimentação inicial usando os repositórios da
// transação do caller (mesmo padrão das aplicações que compõem operações numa
// única tx, como a importação de planilha).
func CriarEmTx(
	produtoRepo repository.ProdutoRepository,
	movRepo repository.MovimentacaoRepository,
	produto *entity.Produto,
	motivoInicial, usuario string,
	now time.Time,
) (*entity.Movimentacao, error) {
	if err := produtoRepo.Create(produto); err != nil {
		return nil, err
	}
	if produto.Estoque <= 0 {
		return nil, nil
	}
	mov := &entity.Movimentacao{
		ID:                 uuid.New().String(),
		ProdutoID:          produto.ID,
		Tipo:               entity.MovimentacaoEntrada,
		Quantidade:         produto.Estoque,
		QuantidadeAnterior: 0,
		QuantidadeAtual:    produto.Estoque,
		Motivo:             motivoInicial,
		Usuario:            usuario,
		DataMovimentacao:   now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// AjustarEmTx aplica um ajuste de estoque dentro da transação do caller:
// bloqueia a linha do produto, compara com o estoque atual e grava a
// movimentação quando há diferença.
func AjustarEmTx(
	produtoRepo repository.ProdutoRepository,
	movRepo repository.MovimentacaoRepository,
	produtoID string,
	novoEstoque int,
	motivo, usuario string,
	now time.Time,
) (*entity.Produto, *entity.Movimentacao, error) {
	produto, err := produtoRepo.GetByIDForUpdate(produtoID)
	if err != nil {
		return nil, nil, err
	}
	if produto == nil {
		return nil, nil, domain.ErrNotFound
	}
	anterior := produto.Estoque
	if novoEstoque == anterior {
		return produto, nil, nil
	}
	tipo := entity.MovimentacaoEntrada
	quantidade := novoEstoque - anterior
	if quantidade < 0 {
		tipo = entity.MovimentacaoSaida
		quantidade = -quantidade
	}
	produto.Estoque = novoEstoque
	produto.DataAtualizacao = now
	if err := produtoRepo.UpdateEstoque(produto.ID, novoEstoque, now); err != nil {
		return nil, nil, err
	}
	mov := &entity.Movimentacao{
		ID:                 uuid.New().String(),
		ProdutoID:          produto.ID,
		Tipo:               tipo,
		Quantidade:         quantidade,
		QuantidadeAnterior: anterior,
		QuantidadeAtual:    novoEstoque,
		Motivo:             motivo,
		Usuario:            usuario,
		DataMovimentacao:   now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, nil, err
	}
	return produto, mov, nil
}

func defaultUnidade(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return entity.UnidadePadrao
	}
	return u
}
