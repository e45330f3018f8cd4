package importacao

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/obratrack/obratrack-api/internal/application/dto"
	"github.com/obratrack/obratrack-api/internal/application/estoque"
	"github.com/obratrack/obratrack-api/internal/domain/entity"
	"github.com/obratrack/obratrack-api/internal/domain/repository"
)

// Colunas obrigatórias da planilha de produtos (unidade e descricao são opcionais).
var ColunasObrigatorias = []string{"nome", "categoria", "codigo", "estoque", "estoque_minimo", "preco"}

// UseCase é o pipeline de importação de planilha:
//
//	PARSE → VALIDATE_ALL → (aborta se houver erro) → APPLY_EACH → SUMMARIZE
//
// A validação percorre todas as linhas e acumula todos os erros de campo antes
// de decidir; uma única linha ruim rejeita o lote inteiro sem efeito colateral.
// A aplicação roda uma transação por linha: duplicata detectada na constraint
// durante o apply interrompe as linhas restantes e reporta o resumo parcial.
type UseCase struct {
	opener      SourceOpener
	txRunner    estoque.TxRunner
	produtoRepo repository.ProdutoRepository
}

// NewUseCase constrói o pipeline.
func NewUseCase(opener SourceOpener, txRunner estoque.TxRunner, produtoRepo repository.ProdutoRepository) *UseCase {
	return &UseCase{opener: opener, txRunner: txRunner, produtoRepo: produtoRepo}
}

// linhaValidada é uma linha da planilha já coerida e pronta para aplicar.
type linhaValidada struct {
	numero        int
	nome          string
	categoria     string
	codigo        string
	estoque       int
	estoqueMinimo int
	preco         decimal.Decimal
	unidade       string
	descricao     string
}

// Importar executa o pipeline completo sobre o arquivo enviado.
func (uc *UseCase) Importar(ctx context.Context, conteudo []byte, nomeArquivo string, opts dto.OpcoesImportacao) (*dto.ImportacaoResponse, error) {
	src, err := uc.opener.Open(conteudo, nomeArquivo)
	if err != nil {
		return nil, err
	}

	headers := src.Headers()
	var faltando []string
	presentes := map[string]bool{}
	for _, h := range headers {
		presentes[strings.TrimSpace(h)] = true
	}
	for _, col := range ColunasObrigatorias {
		if !presentes[col] {
			faltando = append(faltando, col)
		}
	}
	if len(faltando) > 0 {
		return nil, &ErroColunas{Faltando: faltando, Obrigatorias: ColunasObrigatorias, Encontradas: headers}
	}

	linhas, erros, avisos, err := uc.validarLinhas(src.Rows(), opts)
	if err != nil {
		return nil, err
	}
	if len(erros) > 0 {
		return nil, &ErroValidacao{Linhas: erros}
	}

	resumo := &dto.ImportacaoResponse{
		Message:  "Planilha processada com sucesso",
		Warnings: avisos,
	}
	if resumo.Warnings == nil {
		resumo.Warnings = []dto.AvisoLinha{}
	}
	for _, linha := range linhas {
		if err := uc.aplicarLinha(ctx, linha, opts, resumo); err != nil {
			resumo.TotalProcessed = resumo.Created + resumo.Updated
			return nil, &ErroAplicacao{Linha: linha.numero, Causa: err, Parcial: *resumo}
		}
	}
	resumo.TotalProcessed = resumo.Created + resumo.Updated
	return resumo, nil
}

// validarLinhas avalia todas as regras de campo de cada linha (sem
// curto-circuito) e separa erros de avisos. Linhas são numeradas a partir de 2
// porque a linha 1 é o cabeçalho. Falha de banco na checagem de duplicata
// aborta a importação inteira antes de qualquer linha ser aplicada.
func (uc *UseCase) validarLinhas(rows []map[string]string, opts dto.OpcoesImportacao) ([]linhaValidada, []dto.ErroLinha, []dto.AvisoLinha, error) {
	var (
		validas []linhaValidada
		erros   []dto.ErroLinha
		avisos  []dto.AvisoLinha
	)
	for i, row := range rows {
		numero := i + 2
		var errosLinha []string
		var avisosLinha []string

		nome := strings.TrimSpace(row["nome"])
		if nome == "" {
			errosLinha = append(errosLinha, "Nome é obrigatório")
		}
		categoria := strings.TrimSpace(row["categoria"])
		if categoria == "" {
			errosLinha = append(errosLinha, "Categoria é obrigatória")
		}
		codigo := strings.TrimSpace(row["codigo"])
		if codigo == "" {
			errosLinha = append(errosLinha, "Código é obrigatório")
		}

		estoqueVal, ok := parseInteiroTruncado(row["estoque"])
		if !ok {
			errosLinha = append(errosLinha, "Estoque deve ser um número válido")
			estoqueVal = 0
		} else if opts.ValidarEstoque && estoqueVal < 0 {
			errosLinha = append(errosLinha, "Estoque deve ser um número positivo")
		}

		estoqueMin, ok := parseInteiroTruncado(row["estoque_minimo"])
		if !ok {
			errosLinha = append(errosLinha, "Estoque mínimo deve ser um número válido")
			estoqueMin = 0
		} else if estoqueMin < 0 {
			errosLinha = append(errosLinha, "Estoque mínimo deve ser um número positivo")
		}

		preco, err := decimal.NewFromString(strings.TrimSpace(row["preco"]))
		switch {
		case err != nil:
			errosLinha = append(errosLinha, "Preço deve ser um número válido")
			preco = decimal.Zero
		case preco.IsNegative():
			errosLinha = append(errosLinha, "Preço deve ser um número válido")
		case opts.ValidarPrecos && !preco.IsPositive():
			errosLinha = append(errosLinha, "Preço deve ser maior que zero")
		}

		if opts.ValidarDuplicatas && codigo != "" {
			existente, err := uc.produtoRepo.GetAtivoByCodigo(codigo)
			if err != nil {
				return nil, nil, nil, err
			}
			if existente != nil {
				if opts.AtualizarExistente {
					avisosLinha = append(avisosLinha, fmt.Sprintf("Produto com código %s será atualizado", codigo))
				} else {
					errosLinha = append(errosLinha, fmt.Sprintf("Produto com código %s já existe", codigo))
				}
			}
		}

		if len(errosLinha) > 0 {
			erros = append(erros, dto.ErroLinha{Linha: numero, Erros: errosLinha})
			continue
		}
		if len(avisosLinha) > 0 {
			avisos = append(avisos, dto.AvisoLinha{Linha: numero, Avisos: avisosLinha})
		}
		validas = append(validas, linhaValidada{
			numero:        numero,
			nome:          nome,
			categoria:     categoria,
			codigo:        codigo,
			estoque:       estoqueVal,
			estoqueMinimo: estoqueMin,
			preco:         preco,
			unidade:       strings.TrimSpace(row["unidade"]),
			descricao:     strings.TrimSpace(row["descricao"]),
		})
	}
	return validas, erros, avisos, nil
}

// aplicarLinha aplica uma linha validada na própria transação. A busca por
// código roda dentro da tx: duas importações simultâneas com o mesmo código
// não tomam as duas o ramo de criação — a segunda cai na constraint única e
// recebe ErrDuplicate.
func (uc *UseCase) aplicarLinha(ctx context.Context, linha linhaValidada, opts dto.OpcoesImportacao, resumo *dto.ImportacaoResponse) error {
	return uc.txRunner.Run(ctx, func(
		produtoRepo repository.ProdutoRepository,
		movRepo repository.MovimentacaoRepository,
		_ repository.HistoricoRepository,
	) error {
		existente, err := produtoRepo.GetAtivoByCodigo(linha.codigo)
		if err != nil {
			return err
		}
		now := time.Now()
		switch {
		case existente != nil && opts.AtualizarExistente:
			existente.Nome = linha.nome
			existente.Categoria = linha.categoria
			existente.EstoqueMinimo = linha.estoqueMinimo
			existente.Preco = linha.preco
			existente.Unidade = unidadeOuPadrao(linha.unidade)
			existente.Descricao = linha.descricao
			existente.DataAtualizacao = now
			if err := produtoRepo.Update(existente); err != nil {
				return err
			}
			if linha.estoque != existente.Estoque {
				if _, _, err := estoque.AjustarEmTx(produtoRepo, movRepo, existente.ID, linha.estoque,
					estoque.MotivoAtualizacaoPlanilha, estoque.UsuarioSistema, now); err != nil {
					return err
				}
			}
			resumo.Updated++
		case existente == nil:
			produto := &entity.Produto{
				ID:              uuid.New().String(),
				Nome:            linha.nome,
				Categoria:       linha.categoria,
				Codigo:          linha.codigo,
				Estoque:         linha.estoque,
				EstoqueMinimo:   linha.estoqueMinimo,
				Preco:           linha.preco,
				Unidade:         unidadeOuPadrao(linha.unidade),
				Descricao:       linha.descricao,
				Ativo:           true,
				DataCriacao:     now,
				DataAtualizacao: now,
			}
			if _, err := estoque.CriarEmTx(produtoRepo, movRepo, produto,
				estoque.MotivoEstoqueInicialPlanilha, estoque.UsuarioSistema, now); err != nil {
				return err
			}
			resumo.Created++
		default:
			// existe e AtualizarExistente desligado: com ValidarDuplicatas a
			// validação já teria rejeitado o lote; sem a flag a linha é pulada.
		}
		return nil
	})
}

// parseInteiroTruncado aceita número com ponto decimal truncando em direção a
// zero ("12.9" → 12), como as planilhas exportadas costumam trazer.
func parseInteiroTruncado(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}

func unidadeOuPadrao(u string) string {
	if u == "" {
		return entity.UnidadePadrao
	}
	return u
}
