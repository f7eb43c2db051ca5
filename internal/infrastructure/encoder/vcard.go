package encoder

import (
	"fmt"
	"strings"

	"vcardqr/internal/entity"
)

// vCard 3.0 envelope. The serialized card always opens with the version
// header and closes with END:VCARD, no trailing newline.
const (
	vcardHeader = "BEGIN:VCARD\nVERSION:3.0\n"
	vcardFooter = "END:VCARD"
)

// escaper handles the structural characters of the vCard format inside a
// property value: backslash, semicolon, comma and embedded newlines.
var escaper = strings.NewReplacer(
	"\\", "\\\\",
	";", "\\;",
	",", "\\,",
	"\r\n", "\\n",
	"\n", "\\n",
)

// VCard serializes a contact into vCard 3.0 text. It is total: absent
// optional fields simply produce fewer lines. Line order is fixed; a line
// is emitted only when its source field is non-empty after trimming.
func VCard(c entity.Contact) string {
	var b strings.Builder

	b.WriteString(vcardHeader)

	fmt.Fprintf(&b, "FN:%s %s\n", escaper.Replace(c.FirstName), escaper.Replace(c.LastName))
	fmt.Fprintf(&b, "N:%s;%s;;;\n", escaper.Replace(c.LastName), escaper.Replace(c.FirstName))

	if present(c.Mobile) {
		fmt.Fprintf(&b, "TEL;TYPE=CELL:%s\n", escaper.Replace(c.Mobile))
	}
	if present(c.Work) {
		fmt.Fprintf(&b, "TEL;TYPE=WORK:%s\n", escaper.Replace(c.Work))
	}

	if present(c.Email) {
		fmt.Fprintf(&b, "EMAIL:%s\n", escaper.Replace(c.Email))
	}

	if present(c.Company) {
		fmt.Fprintf(&b, "ORG:%s\n", escaper.Replace(c.Company))
	}
	if present(c.Role) {
		fmt.Fprintf(&b, "TITLE:%s\n", escaper.Replace(c.Role))
	}

	// A single structured address line when any component is set. Empty
	// components stay as blank positional slots, never reordered.
	if present(c.Street) || present(c.City) || present(c.State) {
		fmt.Fprintf(&b, "ADR;TYPE=WORK:;;%s;%s;%s;;;\n",
			escaper.Replace(c.Street),
			escaper.Replace(c.City),
			escaper.Replace(c.State),
		)
	}

	if present(c.Website) {
		fmt.Fprintf(&b, "URL:%s\n", escaper.Replace(c.Website))
	}

	b.WriteString(vcardFooter)

	return b.String()
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}
