package intent

// Static keyword tables for the rule-based classifier. Loaded once at process
// start and never mutated.

var greetingPrefixes = map[string][]string{
	"es": {"hola", "buenos", "buenas", "qué más", "que más", "quiubo", "oye"},
	"fr": {"bonjour", "salut", "coucou"},
	"en": {"hi", "hello", "hey", "help"},
}

var languageHints = map[string][]string{
	"es": {"hola", "gracias", "buenos", "buenas", "qué", "ayuda"},
	"fr": {"bonjour", "merci", "salut"},
}

var expandCommands = []string{
	"more", "más", "mas", "plus", "why", "por qué", "por que", "porque",
	"pourquoi", "explica", "details", "detalles",
}

// alternativeCommands ask for the next product suggestion after results.
var alternativeCommands = []string{
	"otra", "otro", "otra opción", "otra opcion", "alternativa",
	"alternativas", "alternative", "alternatives", "another",
}

// blockedKeywords name categories the assistant refuses to analyze. Matched
// on word boundaries, and never overridden by the product permit-list.
var blockedKeywords = []string{
	"tabaco", "tobacco", "cigarrillo", "cigarrillos", "cigarette", "cigarettes",
	"alcohol", "cerveza", "beer", "vino", "wine", "vodka", "whisky", "whiskey",
	"tequila", "licor", "liquor",
	"antibiótico", "antibiotico", "antibiotic", "prescription",
	"arma", "armas", "weapon", "weapons", "gun", "pistola", "rifle",
	"munición", "municion", "ammo",
}

// filterRequests ask to filter without naming criteria; the bot answers with
// the filter menu.
var filterRequests = []string{
	"filtrar", "filtra", "filtros", "filter", "filters",
}

var filterKeywords = []string{
	"vegan", "vegano", "vegana", "sin fragancia", "fragrance-free",
	"fragrance free", "local", "barato", "económico", "economico", "budget",
}

var medicalKeywords = []string{
	"medicina", "doctor", "enfermedad", "síntoma", "sintoma", "tratamiento",
	"medicine", "disease", "symptom", "treatment", "cure", "diagnosis",
}

// outOfScopeKeywords is the deny-list of non-product topics. A match only
// rejects the query when no product indicator is present: the permit-list
// below wins over this list, which keeps borderline product queries flowing
// through to lookup. That precedence is a behavior contract, not an
// implementation detail.
var outOfScopeKeywords = []string{
	"hora", "tiempo", "clima", "weather", "time", "joke", "chiste",
	"dinero", "money", "invest", "inversión", "acciones", "stock", "bitcoin",
	"película", "pelicula", "movie", "música", "musica", "music", "canción",
	"política", "politica", "politics", "elecciones", "election",
	"fútbol", "futbol", "football", "partido",
}

// productIndicators is the permit-list: any of these marks the message as a
// legitimate product query even when a deny-list keyword also matches.
var productIndicators = []string{
	"analiza", "analyze", "producto", "product", "busca", "search",
	"review", "check", "marca", "brand", "ingrediente", "ingredient",
	"comprar", "buy", "etiqueta", "label",
}

var categoryKeywords = []string{
	"shampoo", "champú", "champu", "jabón", "jabon", "soap", "crema", "cream",
	"desodorante", "deodorant", "pasta dental", "toothpaste",
	"protector solar", "sunscreen",
}
