package analyzer

import "fmt"

const systemPrompt = "Du bist ein präziser Finanz-Stratege für politische Börsen."

const taskPrompt = `Analysiere die aktuelle Lage basierend auf diesen Schlagzeilen: %s

Aufgabe:
1. Bewerte die Weltpolitik, Weltwirtschaft, Europa und Deutschland.
2. Identifiziere die 'Top 3 Aktien des Tages' (mit Ticker-Symbol), die von dieser speziellen Lage profitieren (z.B. Rüstung bei Konflikten, Auto bei Subventionen).
3. Gib für jede Aktie eine kurze, logische Begründung an.
`

const unstructuredFormat = `
Formatierung: Nutze Markdown-Listen und fette die Aktiennamen.`

const structuredFormat = `
Antworte exakt in diesem Format, ohne weitere Einleitung:
MARKT: <Einschätzung der Lage in wenigen Sätzen>
TICKER: <genau 3 Ticker-Symbole, durch Komma getrennt, z.B. RHM, SAP, ALV>
BEGRÜNDUNG: <je Aktie eine kurze Begründung>`

// BuildPrompt 返回系统提示词与用户提示词
func BuildPrompt(headlines string, style Style) (string, string) {
	user := fmt.Sprintf(taskPrompt, headlines)
	if style == StyleUnstructured {
		return systemPrompt, user + unstructuredFormat
	}
	return systemPrompt, user + structuredFormat
}
