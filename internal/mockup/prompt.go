package mockup

import (
	"fmt"
	"strings"

	"github.com/velvetcrumb/velvetcrumb-backend/pkg/types"
)

// BuildPrompt renders the configured cake as a natural-language generation
// prompt. Catalog names are used where the draft only holds ids.
func BuildPrompt(item types.CakeItemSpec, catalog types.Catalog) string {
	var sb strings.Builder

	sb.WriteString("A professional bakery product photograph of a ")
	if cakeType, ok := catalog.CakeTypeByID(item.CakeTypeID); ok {
		sb.WriteString(strings.ToLower(cakeType.Name))
	} else {
		sb.WriteString("custom cake")
	}
	if size, ok := catalog.SizeByID(item.SizeID); ok {
		fmt.Fprintf(&sb, ", %s", strings.ToLower(size.Label))
	}
	sb.WriteString(".")

	if item.Flavor != "" {
		fmt.Fprintf(&sb, " %s sponge", item.Flavor)
		if item.Filling != "" {
			fmt.Fprintf(&sb, " with %s filling", strings.ToLower(item.Filling))
		}
		sb.WriteString(".")
	}
	if item.Frosting != "" {
		fmt.Fprintf(&sb, " Finished in %s.", strings.ToLower(item.Frosting))
	}
	if msg := strings.TrimSpace(item.Message); msg != "" {
		fmt.Fprintf(&sb, " The cake has %q written on it.", msg)
	}
	if item.Inspiration != nil {
		sb.WriteString(" Use the attached photo as style inspiration.")
	}
	sb.WriteString(" Soft natural lighting, neutral background, centered composition.")

	return sb.String()
}
