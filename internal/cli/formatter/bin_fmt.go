package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/coursebin/internal/contract"
)

// FormatRecycleBinPage renders the recycle-bin listing as a table with a
// paging footer.
func FormatRecycleBinPage(page *contract.RecycleBinPage) string {
	if page.TotalCount == 0 {
		return StyleDim.Render("Recycle bin is empty.") + "\n"
	}

	headers := []string{"TYPE", "NAME", "DELETED", "REASON", "ID"}
	rows := make([][]string, 0, len(page.Items))
	for _, item := range page.Items {
		rows = append(rows, []string{
			StyleBlue.Render(string(item.EntityType)),
			StyleFg.Render(item.EntityName),
			StyleDim.Render(item.DeletedDate.Format("2006-01-02 15:04")),
			StyleDim.Render(item.DeleteReason),
			StyleDim.Render(shortID(item.EntityID)),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows))

	totalPages := (page.TotalCount + page.PageSize - 1) / page.PageSize
	b.WriteString(StyleDim.Render(fmt.Sprintf("Page %d of %d (%d items)", page.Page, totalPages, page.TotalCount)))
	b.WriteString("\n")
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
