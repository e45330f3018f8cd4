package usecase

import (
	"context"
	"time"

	"github.com/obratrack/obratrack-api/internal/application/dto"
	"github.com/obratrack/obratrack-api/internal/application/estoque"
	"github.com/obratrack/obratrack-api/internal/domain"
	"github.com/obratrack/obratrack-api/internal/domain/entity"
	"github.com/obratrack/obratrack-api/internal/domain/repository"
)

// RelatorioEstoqueGenerator porta para o gerador do relatório de estoque em PDF.
type RelatorioEstoqueGenerator interface {
	GerarRelatorioEstoque(ctx context.Context, produtos []*entity.Produto, geradoEm time.Time) ([]byte, error)
}

// ProdutoUseCase casos de uso de leitura/edição de produtos. Mudanças de
// quantidade passam pelo razão (estoque.UseCase); aqui só campos cadastrais.
type ProdutoUseCase struct {
	repo      repository.ProdutoRepository
	estoque   *estoque.UseCase
	relatorio RelatorioEstoqueGenerator
}

// NewProdutoUseCase constrói o caso de uso.
func NewProdutoUseCase(repo repository.ProdutoRepository, est *estoque.UseCase, relatorio RelatorioEstoqueGenerator) *ProdutoUseCase {
	return &ProdutoUseCase{repo: repo, estoque: est, relatorio: relatorio}
}

// List lista os produtos ativos.
func (uc *ProdutoUseCase) List() ([]dto.ProdutoResponse, error) {
	list, err := uc.repo.ListAtivos()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProdutoResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.ToProdutoResponse(p))
	}
	return items, nil
}

// GetByID obtém um produto por ID.
func (uc *ProdutoUseCase) GetByID(id string) (*dto.ProdutoResponse, error) {
	produto, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if produto == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToProdutoResponse(produto), nil
}

// Update edita os campos cadastrais. Se Estoque vem no request e difere do
// atual, o ajuste passa pelo razão e gera a movimentação correspondente.
func (uc *ProdutoUseCase) Update(ctx context.Context, id string, in dto.UpdateProdutoRequest) (*dto.ProdutoResponse, error) {
	produto, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if produto == nil {
		return nil, domain.ErrNotFound
	}
	if in.Nome != nil {
		produto.Nome = *in.Nome
	}
	if in.Categoria != nil {
		produto.Categoria = *in.Categoria
	}
	if in.Codigo != nil {
		produto.Codigo = *in.Codigo
	}
	if in.EstoqueMinimo != nil {
		if *in.EstoqueMinimo < 0 {
			return nil, domain.ErrInvalidInput
		}
		produto.EstoqueMinimo = *in.EstoqueMinimo
	}
	if in.Preco != nil {
		if in.Preco.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		produto.Preco = *in.Preco
	}
	if in.Unidade != nil {
		produto.Unidade = *in.Unidade
	}
	if in.Descricao != nil {
		produto.Descricao = *in.Descricao
	}
	produto.DataAtualizacao = time.Now()
	if err := uc.repo.Update(produto); err != nil {
		return nil, err
	}

	if in.Estoque != nil && *in.Estoque != produto.Estoque {
		if *in.Estoque < 0 {
			return nil, domain.ErrInvalidInput
		}
		usuario := in.Usuario
		if usuario == "" {
			usuario = estoque.UsuarioSistema
		}
		atualizado, _, err := uc.estoque.AjustarEstoque(ctx, id, *in.Estoque, estoque.MotivoAjusteEdicao, usuario)
		if err != nil {
			return nil, err
		}
		produto = atualizado
	}
	return dto.ToProdutoResponse(produto), nil
}

// Desativar exclui logicamente o produto, liberando o código para reuso. As
// movimentações já registradas permanecem no razão.
func (uc *ProdutoUseCase) Desativar(id string) error {
	return uc.repo.Desativar(id, time.Now())
}

// AtualizarFoto grava a URL/caminho da foto do produto.
func (uc *ProdutoUseCase) AtualizarFoto(id, foto string) (*dto.ProdutoResponse, error) {
	produto, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if produto == nil {
		return nil, domain.ErrNotFound
	}
	produto.Foto = foto
	produto.DataAtualizacao = time.Now()
	if err := uc.repo.Update(produto); err != nil {
		return nil, err
	}
	return dto.ToProdutoResponse(produto), nil
}

// RelatorioEstoque gera o PDF do estoque atual (produtos ativos).
func (uc *ProdutoUseCase) RelatorioEstoque(ctx context.Context) ([]byte, error) {
	produtos, err := uc.repo.ListAtivos()
	if err != nil {
		return nil, err
	}
	return uc.relatorio.GerarRelatorioEstoque(ctx, produtos, time.Now())
}
