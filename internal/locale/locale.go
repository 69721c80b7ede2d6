// Package locale isolates every user-facing string behind a message catalog
// so the calculator core stays free of presentation concerns. The French
// catalog is the default; the testable contract of the core is on error
// kinds and numeric results, not on the translated prose. The exception is
// the equality operator's "Oui"/"Non" literals, which are part of its
// documented result.
package locale

import "sync"

// Catalog holds every localized string used by the calculator and its
// host loop.
type Catalog struct {
	// Name is the catalog identifier ("fr", "en").
	Name string

	// Yes and No are the display values returned by the equality operator.
	Yes string
	No  string

	// Error descriptions (short human labels, one per error kind).
	DescSyntaxError     string
	DescEvaluationError string

	// Error details (full explanatory messages).
	EmptyExpression      string
	InvalidExpression    string
	OperationNotFound    string
	DivisionByZero       string
	ZeroPowerZero        string
	NegativeBasePower    string
	UnsupportedOperation string

	// REPL prose.
	BannerTitle   string
	Prompt        string
	Goodbye       string
	HelpHeader    string
	HelpEval      string
	HelpOps       string
	HelpLang      string
	HelpStatus    string
	HelpLast      string
	HelpHelp      string
	HelpQuit      string
	OpsHeader     string
	StatusHeader  string
	NoLastResult  string
	UnknownOption string
	ReadError     string
	ResultLabel   string
	TimeLabel     string
}

var (
	// French is the default catalog, matching the calculator's original
	// audience (the equality operator answers "Oui"/"Non").
	French = Catalog{
		Name: "fr",

		Yes: "Oui",
		No:  "Non",

		DescSyntaxError:     "Erreur de syntaxe",
		DescEvaluationError: "Erreur d'évaluation",

		EmptyExpression:      "l'expression ne peut pas être vide",
		InvalidExpression:    "l'expression n'est pas valide",
		OperationNotFound:    "l'expression n'est pas valide : opération non prise en charge",
		DivisionByZero:       "division par zéro",
		ZeroPowerZero:        "0^0 n'est pas défini",
		NegativeBasePower:    "base négative avec exposant non entier : résultat non défini",
		UnsupportedOperation: "opération non prise en charge",

		BannerTitle:   "Calculatrice interactive",
		Prompt:        "calc> ",
		Goodbye:       "Au revoir !",
		HelpHeader:    "Commandes disponibles :",
		HelpEval:      "Entrez une expression de la forme <nombre> <opérateur> <nombre>",
		HelpOps:       "Liste des opérateurs pris en charge",
		HelpLang:      "Change la langue (fr, en)",
		HelpStatus:    "Affiche la configuration courante",
		HelpLast:      "Réaffiche le dernier résultat",
		HelpHelp:      "Affiche cette aide",
		HelpQuit:      "Quitte le mode interactif",
		OpsHeader:     "Opérateurs pris en charge :",
		StatusHeader:  "Configuration courante :",
		NoLastResult:  "Aucun résultat précédent",
		UnknownOption: "Langue inconnue",
		ReadError:     "Erreur de lecture",
		ResultLabel:   "Résultat",
		TimeLabel:     "Temps",
	}

	// English is the alternate catalog, selectable with --lang en or
	// CALCLI_LANG=en.
	English = Catalog{
		Name: "en",

		Yes: "Yes",
		No:  "No",

		DescSyntaxError:     "Syntax error",
		DescEvaluationError: "Evaluation error",

		EmptyExpression:      "expression cannot be empty",
		InvalidExpression:    "expression is not valid",
		OperationNotFound:    "expression is not valid: operation not supported",
		DivisionByZero:       "division by zero",
		ZeroPowerZero:        "0^0 is undefined",
		NegativeBasePower:    "negative base with non-integer exponent is undefined",
		UnsupportedOperation: "unsupported operation",

		BannerTitle:   "Interactive calculator",
		Prompt:        "calc> ",
		Goodbye:       "Goodbye!",
		HelpHeader:    "Available commands:",
		HelpEval:      "Type an expression of the form <number> <operator> <number>",
		HelpOps:       "List supported operators",
		HelpLang:      "Change language (fr, en)",
		HelpStatus:    "Display current configuration",
		HelpLast:      "Display the last result again",
		HelpHelp:      "Display this help",
		HelpQuit:      "Exit interactive mode",
		OpsHeader:     "Supported operators:",
		StatusHeader:  "Current configuration:",
		NoLastResult:  "No previous result",
		UnknownOption: "Unknown language",
		ReadError:     "Read error",
		ResultLabel:   "Result",
		TimeLabel:     "Time",
	}

	currentCatalog = French
	catalogMutex   sync.RWMutex
)

// Current returns the active catalog in a thread-safe manner.
func Current() Catalog {
	catalogMutex.RLock()
	defer catalogMutex.RUnlock()
	return currentCatalog
}

// Set changes the active catalog by name. Valid names are "fr" and "en";
// unknown names are ignored and false is returned.
func Set(name string) bool {
	catalogMutex.Lock()
	defer catalogMutex.Unlock()

	switch name {
	case "fr":
		currentCatalog = French
	case "en":
		currentCatalog = English
	default:
		return false
	}
	return true
}
