package narrator

// AphorismTurns is the length of the aphorism cycle driven by the pass count
const AphorismTurns = 37

// Closing is said when every koan passed
const Closing = "Nobody ever expects the Spanish Inquisition."

// From The Zen of Python (PEP 20), by way of Ara T. Howard's metakoans and the Ruby Koans.
var aphorisms = [...]string{
	"Beautiful is better than ugly.",
	"Explicit is better than implicit.",
	"Simple is better than complex.",
	"Complex is better than complicated.",
	"Flat is better than nested.",
	"Sparse is better than dense.",
	"Readability counts.",
	"Special cases aren't special enough to break the rules.",
	"Although practicality beats purity.",
	"Errors should never pass silently.",
	"Unless explicitly silenced.",
	"In the face of ambiguity, refuse the temptation to guess.",
	"There should be one-- and preferably only one --obvious way to do it.",
	"Although that way may not be obvious at first unless you're Dutch.",
	"Now is better than never.",
	"Although never is often better than right now.",
	"If the implementation is hard to explain, it's a bad idea.",
	"If the implementation is easy to explain, it may be a good idea.",
	"Namespaces are one honking great idea -- let's do more of those!",
}

// Aphorism returns the aphorism for a turn of the cycle. Turn 0 has its own line,
// every other line covers two consecutive turns, and anything past the table
// falls through to the last one.
func Aphorism(turn int) string {
	turn %= AphorismTurns
	if turn < 0 {
		turn += AphorismTurns
	}
	i := (turn + 1) / 2
	if i >= len(aphorisms) {
		i = len(aphorisms) - 1
	}
	return aphorisms[i]
}
