package templates

// Canned user-facing texts. Loaded once; never mutated at runtime. The
// assistant speaks Spanish by default with English and French greetings.

const header = "NOURA: EVIDENCE-BASED WELLBEING™"

var greetings = map[string]string{
	"es": header + `

👋 Hola, soy NOURA, tu asistente de consumo consciente 🌿
Puedo ayudarte a entender el impacto real de productos en tu salud y el planeta.

📸 Envíame una foto de cualquier producto
✍️ Escribe el nombre de un producto
🎯 Pregunta por una categoría (ej: "shampoo sin sulfatos")

📍 ¿En qué país te encuentras?`,

	"en": header + `

👋 Hi, I'm NOURA, your conscious consumption assistant 🌿
I help you understand the real impact of products on your health and the planet.

📸 Send me a photo of any product
✍️ Type a product name
🎯 Ask for a category (e.g., "sulfate-free shampoo")

📍 Which country are you in?`,

	"fr": header + `

👋 Bonjour, je suis NOURA, ton assistant de consommation consciente 🌿
Je t'aide à comprendre l'impact réel des produits sur ta santé et la planète.

📸 Envoie-moi une photo de n'importe quel produit
✍️ Tape le nom d'un produit
🎯 Demande une catégorie (ex: "shampoing sans sulfates")

📍 Dans quel pays te trouves-tu?`,
}

const (
	readyPrompt   = "¡Perfecto! ¿Qué producto quieres que analice? 📸"
	askCountry    = "¿En qué país te encuentras? Esto me ayuda a darte opciones locales y más sostenibles 🌍"
	reprompt      = "¿Qué producto te gustaría que analice?"
	anotherPrompt = "¿Quieres ver otro producto?"
	busyPrompt    = "Sigo analizando tu producto anterior, dame un momento..."

	errOutOfScope    = "Soy NOURA, tu asistente de compra consciente. No puedo responder eso, pero puedo ayudarte a encontrar productos más responsables."
	errBlocked       = "🚫 No analizo tabaco, alcohol, medicamentos con receta ni armas. ¿Quieres explorar alternativas más saludables?"
	errMedical       = "No puedo dar consejos médicos. Consulta con un profesional de la salud. ¿Quieres explorar productos de cuidado personal limpios?"
	errPII           = "🔒 Por tu seguridad, no puedo procesar datos personales. ¡Sigamos buscando productos!"
	errNotFound      = "🔍 No encontré este producto exacto. Intenta con el código de barras o un nombre más específico."
	errNoAlternative = "🔍 No encontré más alternativas para esta búsqueda. ¿Quieres analizar otro producto?"
	errGeneric       = "Lo siento, ocurrió un error. Por favor intenta de nuevo."
	errRateLimit     = "Has alcanzado el límite de análisis por minuto. Espera un momento e intenta de nuevo ⏳"

	filtersPrompt = "¿Cómo quieres filtrar los resultados?\n• Vegano\n• Sin fragancia\n• Producción local\n• Económico"

	summaryCTA    = "💡 Responde \"más\" para el análisis detallado · \"otra\" para ver una alternativa"
	summaryFooter = "📊 Datos: Open Food Facts + FDA · No es consejo médico"

	methodology = `🔬 METODOLOGÍA DE PUNTUACIÓN:
- Salud (35%): Basado en FDA, EFSA, EWG
- Planeta (30%): EPA, huella de carbono, certificaciones
- Justicia Social (20%): B-Corp, Fair Trade, prácticas laborales
- Bienestar Animal (15%): Leaping Bunny, PETA, políticas cruelty-free`
)
