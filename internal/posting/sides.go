package posting

import (
	"github.com/verifikat-dev/verifikat/internal/accounts"
	"github.com/verifikat-dev/verifikat/internal/model"
)

// flaggedSides returns the sides a template row is stored with, debit first.
func flaggedSides(row model.TemplateRow) []model.Side {
	var sides []model.Side
	if row.IsDebitRow {
		sides = append(sides, model.Debit)
	}
	if row.IsCreditRow {
		sides = append(sides, model.Credit)
	}
	return sides
}

// inverted reports whether a sale is being recorded against a clearing
// account whose designated side is opposite to the side the template stores
// for the placeholder row. Templates are authored for the bank account, so
// moving the clearing leg to the other side flips revenue and VAT with it.
// Cash mode never inverts.
func inverted(rows []model.TemplateRow, m model.RecordingMode, isSale bool) bool {
	if !isSale {
		return false
	}
	for _, row := range rows {
		if row.AccountCode != accounts.Clearing {
			continue
		}
		sub := accounts.Substitute(row.AccountCode, m, isSale)
		if sub == row.AccountCode {
			return false
		}
		designated, ok := accounts.DesignatedSide(sub)
		stored := flaggedSides(row)
		if !ok || len(stored) != 1 {
			return false
		}
		return stored[0] != designated
	}
	return false
}

// sidesFor returns the sides a row posts on after substitution to code.
// A substituted clearing row always posts on its designated side.
func sidesFor(row model.TemplateRow, code string, invert bool) []model.Side {
	if code != row.AccountCode {
		if side, ok := accounts.DesignatedSide(code); ok {
			return []model.Side{side}
		}
	}
	sides := flaggedSides(row)
	if invert && invertible(code) {
		for i, s := range sides {
			sides[i] = s.Opposite()
		}
	}
	return sides
}
