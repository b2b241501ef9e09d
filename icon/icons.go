package icon

// Icon identifies a single symbol in the global registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Mark
	Search
	Link
	Lua
	Play
	Pause
	Mute
	Like
	Save
	Share
	Views
	Video
	Audio
	Ebook
	Sermon
	Progress
)

// icons maps every registered Icon to its per-variant representations.
var icons = map[Icon]*iconDef{
	Success:  {emoji: "✅", nerd: "", plain: "[ok]", kaomoji: "(･ω･)b", squares: "■"},
	Fail:     {emoji: "❌", nerd: "", plain: "[x]", kaomoji: "(╯°□°)╯", squares: "□"},
	Mark:     {emoji: "🟪", nerd: "", plain: "*", kaomoji: "(._.)", squares: "▣"},
	Search:   {emoji: "🔍", nerd: "", plain: "?", kaomoji: "(･_･)?", squares: "▤"},
	Link:     {emoji: "🔗", nerd: "", plain: "->", kaomoji: "(o_o)/", squares: "▥"},
	Lua:      {emoji: "🌙", nerd: "", plain: "lua", kaomoji: "(=^･ω･^=)", squares: "▦"},
	Play:     {emoji: "▶️", nerd: "", plain: ">", kaomoji: "(~˘▾˘)~", squares: "▶"},
	Pause:    {emoji: "⏸️", nerd: "", plain: "||", kaomoji: "(-_-)zzz", squares: "▮▮"},
	Mute:     {emoji: "🔇", nerd: "", plain: "m", kaomoji: "(x_x)", squares: "▪"},
	Like:     {emoji: "❤️", nerd: "", plain: "<3", kaomoji: "(♥ω♥)", squares: "♥"},
	Save:     {emoji: "🔖", nerd: "", plain: "[s]", kaomoji: "(._.)φ", squares: "▰"},
	Share:    {emoji: "📤", nerd: "", plain: "[>]", kaomoji: "(ノ^_^)ノ", squares: "▱"},
	Views:    {emoji: "👁️", nerd: "", plain: "(o)", kaomoji: "(⊙_⊙)", squares: "◉"},
	Video:    {emoji: "🎬", nerd: "", plain: "[v]", kaomoji: "(▰˘◡˘▰)", squares: "◫"},
	Audio:    {emoji: "🎧", nerd: "", plain: "[a]", kaomoji: "(￣▽￣)ノ♪", squares: "◩"},
	Ebook:    {emoji: "📖", nerd: "", plain: "[e]", kaomoji: "(-_-)旦~", squares: "◪"},
	Sermon:   {emoji: "🎙️", nerd: "", plain: "[p]", kaomoji: "(^o^)/", squares: "◨"},
	Progress: {emoji: "⏳", nerd: "", plain: "...", kaomoji: "(｡-_-｡)", squares: "◐"},
}
