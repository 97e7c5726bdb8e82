package constants

// Centralized constants for env keys, routes and the narrative API.
const (
	// Environment variable keys
	EnvArenaConfig   = "ARENA_CONFIG"
	EnvArenaDB       = "ARENA_DB"
	EnvOpenAIAPIKey  = "OPENAI_API_KEY"
	EnvNarrativeBase = "NARRATIVE_BASE_URL"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	// Authorization prefix
	BearerPrefix = "Bearer "

	// Narrative API endpoints (OpenAI-compatible chat completions).
	// The base URL can be overridden via NARRATIVE_BASE_URL so an
	// OpenRAG/Langflow style gateway can stand in for api.openai.com.
	NarrativeBaseURL             = "https://api.openai.com"
	NarrativeChatCompletionsPath = "/v1/chat/completions"
	NarrativeChatModel           = "gpt-5-nano"
)

// Routes used by the backend router
const (
	RouteAPIPrefix     = "/api"
	RouteVersion       = "/version"
	RouteRoster        = "/roster"
	RouteLeaderboard   = "/leaderboard"
	RoutePlayerStats   = "/player-stats/:playerName"
	RouteBattles       = "/battles"
	RouteBattleByCode  = "/battles/:battleCode"
	RouteBattleAction  = "/battles/:battleCode/action"
	RouteBattleResign  = "/battles/:battleCode/resign"
	RouteBattleWatch   = "/battles/:battleCode/watch"
	RouteBattleSummary = "/battles/:battleCode/summary"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest    = "Invalid request"
	ErrInvalidBattleCode = "Invalid battle code"
	ErrBattleNotFound    = "Battle not found"
	ErrPlayerNotFound    = "Player not found"

	ErrFailedCreateBattle     = "Failed to create battle"
	ErrFailedFetchBattles     = "Failed to fetch battles"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedFetchStats       = "Failed to fetch stats"
	ErrPlayerNameRequired     = "Player name is required"
	ErrPlayerNameExceeds      = "Player name exceeds 32 characters"
	ErrTooManySupportHeroes   = "A party allows at most two support heroes"
	ErrUnknownHero            = "Unknown hero"
	ErrUnknownMonster         = "Unknown monster"

	ErrBattleNotInProgress = "Battle is not in progress"
	ErrNotYourTurn         = "It is not that combatant's turn"
	ErrCombatantDefeated   = "Combatant is already defeated"
	ErrUnknownAbility      = "Combatant does not have that ability"
	ErrFailedResolveAction = "Failed to resolve action"
	ErrFailedResignBattle  = "Failed to resign battle"
	ErrSummaryNotReadyYet  = "Summary is not available yet"
	ErrFailedUpgradeSocket = "Failed to upgrade connection"
	ErrFailedFetchRoster   = "Failed to fetch roster"
)

// Logging field names
const (
	LogFieldBattleID = "battle_id"
	LogFieldCode     = "battle_code"
	LogFieldActor    = "actor"
	LogFieldTarget   = "target"
	LogFieldAddr     = "addr"
	LogFieldSource   = "source"
)
