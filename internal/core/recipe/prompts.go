package recipe

import (
	"fmt"
	"strings"
)

// generationPromptTemplate asks for 2-3 recipe suggestions in the fixed
// marker format ParseRecipes expects. The example block anchors the model to
// the template; the trailing note requests the separator between recipes.
const generationPromptTemplate = `Você é um assistente de culinária.
Quero sugestões de receitas que usem principalmente os seguintes ingredientes: %s.
Por favor, me forneça 2 ou 3 sugestões de receitas.
Para cada receita, inclua:
1. Nome da Receita (coloque entre **Nome da Receita:** e **Ingredientes:**)
2. Ingredientes (liste todos, incluindo os que eu não mencionei, mas que são necessários, marque os que eu forneci com um asterisco (*) ao lado. Formato: - Item (quantidade opcional) [*])
3. Modo de Preparo (passos numerados)

Exemplo de formato para uma receita:
**Nome da Receita:** Omelete Simples
**Ingredientes:**
- Ovos (2 unidades) [*]
- Sal (a gosto)
- Pimenta do reino (a gosto)
- Óleo ou manteiga (para untar)
**Modo de Preparo:**
1. Bata os ovos em uma tigela.
2. Tempere com sal e pimenta.
3. Aqueça uma frigideira com óleo ou manteiga.
4. Despeje os ovos batidos e cozinhe até firmar.

--- (use três hífens para separar múltiplas receitas, se houver)`

// followUpPromptTemplate grounds a follow-up answer in the recipe context.
const followUpPromptTemplate = `Contexto da Receita:
%s

Pergunta do usuário: %s

Por favor, responda à pergunta do usuário com base no contexto da receita fornecido.
Se a pergunta for sobre substituições de ingredientes, seja específico.
Se for sobre tempo, tente estimar.`

// buildGenerationPrompt embeds the normalized ingredient list into the
// generation template.
func buildGenerationPrompt(ingredients []string) string {
	return fmt.Sprintf(generationPromptTemplate, strings.Join(ingredients, ", "))
}

// buildRecipeContext flattens a recipe into the context block sent with
// follow-up questions.
func buildRecipeContext(r Recipe) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Nome da Receita: %s\n", orNA(r.Name)))
	sb.WriteString(fmt.Sprintf("Ingredientes: %s\n", orNA(r.IngredientsText)))
	sb.WriteString(fmt.Sprintf("Modo de Preparo: %s\n", orNA(r.InstructionsText)))
	return sb.String()
}

// buildFollowUpPrompt embeds recipe context and question into the follow-up
// template.
func buildFollowUpPrompt(r Recipe, question string) string {
	return fmt.Sprintf(followUpPromptTemplate, buildRecipeContext(r), question)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
