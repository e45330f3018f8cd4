// seed gera o script SQL com as configurações padrão do sistema e,
// opcionalmente, configurações adicionais vindas de uma planilha
// (CSV ou Excel) com as colunas: chave, valor, tipo, descricao, categoria.
//
// Uso: go run ./cmd/seed [caminho/configuracoes.csv]
// Escreve: migrations/002_seed_configuracoes.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/obratrack/obratrack-api/internal/infrastructure/tabular"
)

type configuracao struct {
	chave     string
	valor     string
	tipo      string
	descricao string
	categoria string
	editavel  bool
}

var padroes = []configuracao{
	{"nome_empresa", "ObraTrack", "string", "Nome exibido no topo da aplicação", "geral", true},
	{"estoque_alerta_habilitado", "true", "boolean", "Exibir alertas de estoque abaixo do mínimo", "estoque", true},
	{"historico_retencao_dias", "90", "number", "Dias de retenção do histórico de acesso", "sistema", true},
	{"feed_comentarios_habilitados", "true", "boolean", "Permitir comentários nas postagens do feed", "feed", true},
	{"importacao_formatos", `["csv","xlsx","xls"]`, "json", "Formatos aceitos na importação de planilhas", "estoque", false},
	{"versao_schema", "1", "number", "Versão do esquema de dados", "sistema", false},
}

func main() {
	configs := append([]configuracao(nil), padroes...)

	if len(os.Args) > 1 {
		extras, err := lerPlanilha(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Ler planilha: %v\n", err)
			os.Exit(1)
		}
		configs = append(configs, extras...)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "migrations", "002_seed_configuracoes.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Criar arquivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Configurações padrão do sistema\n")
	out.WriteString("-- Gerado por cmd/seed\n\n")
	for _, c := range configs {
		fmt.Fprintf(out, "INSERT INTO configuracoes (id, chave, valor, tipo, descricao, categoria, editavel)\n")
		fmt.Fprintf(out, "VALUES (gen_random_uuid(), '%s', '%s', '%s', '%s', '%s', %t)\n",
			escapeSQL(c.chave), escapeSQL(c.valor), escapeSQL(c.tipo),
			escapeSQL(c.descricao), escapeSQL(c.categoria), c.editavel)
		out.WriteString("ON CONFLICT (chave) DO NOTHING;\n")
	}

	fmt.Printf("Gerado %s: %d configurações\n", outPath, len(configs))
}

// lerPlanilha decodifica o arquivo com o mesmo parser da importação de
// estoque, aceitando CSV e Excel.
func lerPlanilha(caminho string) ([]configuracao, error) {
	conteudo, err := os.ReadFile(caminho)
	if err != nil {
		return nil, err
	}
	fonte, err := tabular.NewOpener(true).Open(conteudo, caminho)
	if err != nil {
		return nil, err
	}
	var out []configuracao
	for _, linha := range fonte.Rows() {
		chave := strings.TrimSpace(linha["chave"])
		if chave == "" {
			continue
		}
		tipo := linha["tipo"]
		if tipo == "" {
			tipo = "string"
		}
		categoria := linha["categoria"]
		if categoria == "" {
			categoria = "geral"
		}
		out = append(out, configuracao{
			chave:     chave,
			valor:     linha["valor"],
			tipo:      tipo,
			descricao: linha["descricao"],
			categoria: categoria,
			editavel:  true,
		})
	}
	return out, nil
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
