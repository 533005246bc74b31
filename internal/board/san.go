package board

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cotulenh/core/internal/xerr"
)

// separatorFor returns the single-character flag separator for a move,
// per spec.md §4.9: `-` none, `x` capture, `_` stay-capture, `@` suicide,
// `&` combination, `>` deploy. Deploy composes with whichever other flag
// the sub-move also carries, in the order [deploy][stay][capture][suicide][combine].
func separatorFor(m Move) string {
	var sb strings.Builder
	if m.IsDeploy {
		sb.WriteByte('>')
	}
	switch m.Flag {
	case FlagStayCapture:
		sb.WriteByte('_')
	case FlagCapture:
		sb.WriteByte('x')
	case FlagSuicideCapture:
		sb.WriteByte('@')
	case FlagCombination:
		sb.WriteByte('&')
	case FlagNormal:
		if sb.Len() == 0 {
			sb.WriteByte('-')
		}
	}
	return sb.String()
}

// SAN renders a move in short algebraic form. ambiguous is the set of
// other pseudo-legal moves of the same piece kind/color that also land on
// m.To, used to compute the minimal disambiguator.
func SAN(m Move, ambiguous []Move) string {
	sep := separatorFor(m)
	token := string(m.Kind.Char())
	disambig := disambiguate(m, ambiguous)
	return fmt.Sprintf("%s%s%s%s", token, disambig, sep, m.To.String())
}

// LAN renders a move in long algebraic form: piece token, origin square,
// separator, destination square.
func LAN(m Move) string {
	sep := separatorFor(m)
	return fmt.Sprintf("%s%s%s%s", string(m.Kind.Char()), m.From.String(), sep, m.To.String())
}

// disambiguate picks the minimal disambiguator needed to distinguish m
// from other same-kind moves landing on the same square: full origin
// square if both rank and file collide with some other candidate, else
// just the rank digit, else just the file letter, else nothing.
func disambiguate(m Move, others []Move) string {
	needFile, needRank := false, false
	for _, o := range others {
		if o.From == m.From || o.Kind != m.Kind || o.To != m.To {
			continue
		}
		if o.From.File() == m.From.File() {
			needRank = true
		}
		if o.From.Rank() == m.From.Rank() {
			needFile = true
		}
		if o.From.File() != m.From.File() && o.From.Rank() != m.From.Rank() {
			needFile = true
		}
	}
	switch {
	case needFile && needRank:
		return m.From.String()
	case needRank:
		return fmt.Sprintf("%d", m.From.Rank()+1)
	case needFile:
		return string(rune('a' + m.From.File()))
	default:
		return ""
	}
}

// DeploySAN renders a deploy turn's sub-moves as a sequence: an optional
// bracketed stay-piece token, then a '<' marker, then the comma-joined
// per-unit SANs (spec.md §4.9).
func DeploySAN(stayPiece PieceKind, hasStay bool, sans []string) string {
	var sb strings.Builder
	if hasStay {
		sb.WriteByte('[')
		sb.WriteByte(stayPiece.Char())
		sb.WriteByte(']')
	}
	sb.WriteByte('<')
	sb.WriteString(strings.Join(sans, ","))
	return sb.String()
}

// DeployLAN renders a deploy turn's sub-moves as
// "<origin>:<stayPieceOrEmpty>:<lan1>,<lan2>,...".
func DeployLAN(origin Square, stayPiece PieceKind, hasStay bool, lans []string) string {
	stayTok := ""
	if hasStay {
		stayTok = string(stayPiece.Char())
	}
	return fmt.Sprintf("%s:%s:%s", origin.String(), stayTok, strings.Join(lans, ","))
}

var sanPattern = regexp.MustCompile(`^(?P<deploy>>?)(?P<piece>[A-Z])(?P<disambig>[a-k]?[0-9]{0,2}|[a-k][0-9]{1,2})(?P<sep>[-x_@&])(?P<to>[a-k](?:[1-9]|1[0-2]))$`)

// ParsedSAN is the permissive-regex decomposition of a SAN token.
type ParsedSAN struct {
	Deploy   bool
	Kind     PieceKind
	Disambig string
	Flag     MoveFlag
	To       Square
}

// ParseSAN applies the permissive fallback regex described in spec.md
// §4.9 when the strict regenerate-and-compare pass fails to match an
// input string against any legal move's own SAN.
func ParseSAN(s string) (ParsedSAN, error) {
	m := sanPattern.FindStringSubmatch(s)
	if m == nil {
		return ParsedSAN{}, xerr.New(xerr.MoveInvalidDestination, "unparseable SAN %q", s)
	}
	names := sanPattern.SubexpNames()
	groups := map[string]string{}
	for i, v := range m {
		if i == 0 || names[i] == "" {
			continue
		}
		groups[names[i]] = v
	}
	kind, ok := KindFromChar(groups["piece"][0])
	if !ok {
		return ParsedSAN{}, xerr.New(xerr.FENInvalidPiece, "unknown piece letter in SAN %q", s)
	}
	to, err := ParseSquare(groups["to"])
	if err != nil {
		return ParsedSAN{}, xerr.New(xerr.MoveInvalidDestination, "bad destination in SAN %q", s)
	}
	var flag MoveFlag
	switch groups["sep"] {
	case "-":
		flag = FlagNormal
	case "x":
		flag = FlagCapture
	case "_":
		flag = FlagStayCapture
	case "@":
		flag = FlagSuicideCapture
	case "&":
		flag = FlagCombination
	}
	return ParsedSAN{
		Deploy:   groups["deploy"] == ">",
		Kind:     kind,
		Disambig: groups["disambig"],
		Flag:     flag,
		To:       to,
	}, nil
}
