package scoring

// commonEmojis is the allow-list scanned by the emoji criterion. Ported
// verbatim from the editor's emoji picker set.
var commonEmojis = []string{
	"😀", "😃", "😄", "😁", "😆", "🥹", "😅", "😂", "🤣", "🥲",
	"☺️", "😊", "😇", "🙂", "🙃", "😉", "😌", "😍", "🥰", "😘",
	"😗", "😙", "😚", "😋", "😛", "😜", "🤪", "😝", "🤑", "🤗",
	"🤭", "🤫", "🤔", "🤐", "🤨", "😐", "😑", "😶", "😏", "😒",
	"🙄", "😬", "🤥", "😌", "😔", "😪", "🤤", "😴", "😷", "🤒",
	"🤕", "🤢", "🤮", "🤧", "🥵", "🥶", "🥴", "😵", "🤯", "🤠",
	"🥳", "🥸", "😎", "🤓", "🧐", "😕", "😟", "🙁", "☹️", "😮",
	"😯", "😲", "😳", "🥺", "😦", "😧", "😨", "😰", "😥", "😢",
	"😭", "😱", "😖", "😣", "😞", "😓", "😩", "😫", "🥱", "😤",
	"😡", "😠", "🤬", "😈", "👿", "💀", "☠️", "💩", "🤡", "👹",
	"👺", "👻", "👽", "👾", "🤖", "😺", "😸", "😹", "😻", "😼",
	"😽", "🙀", "😿", "😾", "🙈", "🙉", "🙊", "💋", "💌", "💘",
	"💝", "💖", "💗", "💓", "💞", "💕", "💟", "❣️", "💔", "❤️",
	"🧡", "💛", "💚", "💙", "💜", "🖤", "🤍", "🤎", "💯", "💢",
	"💥", "💫", "💦", "💨", "🕳️", "💣", "💬", "👋", "🤚", "🖐️",
	"✋", "🖖", "👌", "🤌", "🤏", "✌️", "🤞", "🤟", "🤘", "🤙",
	"👈", "👉", "👆", "🖕", "👇", "☝️", "👍", "👎", "✊", "👊",
	"🤛", "🤜", "👏", "🙌", "👐", "🤲", "🤝", "🙏", "✍️", "💅",
	"🤳", "💪", "🦾", "🦿", "🦵", "🦶", "👂", "🦻", "👃", "🧠",
	"🫀", "🫁", "🦷", "🦴", "👀", "👁️", "👅", "👄", "🔥", "⭐",
	"🌟", "✨", "⚡", "☀️", "🌈", "🌸", "🌺", "🌻", "🌼", "🌷",
	"🌹", "🍀", "🎉", "🎊", "🎁", "🎈", "🏆", "🥇", "🥈", "🥉",
	"🏅", "🎯", "🚀", "💡", "📌", "📍", "🔗", "📩", "📬", "📱",
	"💻", "📷", "🎥", "🎬", "🎵", "🎶", "❤️‍🔥",
}
