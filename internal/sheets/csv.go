package sheets

import "strings"

// ParseCSV tokenizes a Google Sheets CSV export into rows of trimmed fields.
// RFC 4180 rules: comma-delimited, double-quoted fields may contain commas,
// newlines and doubled-quote escapes ("" -> "). CRLF and LF inputs produce
// identical output. Rows that are a single empty field are dropped.
func ParseCSV(text string) [][]string {
	var rows [][]string
	i := 0

	for i < len(text) {
		var row []string
		for i < len(text) {
			var field strings.Builder

			if text[i] == '"' {
				i++ // opening quote
				for i < len(text) {
					if text[i] == '"' {
						if i+1 < len(text) && text[i+1] == '"' {
							field.WriteByte('"')
							i += 2
						} else {
							i++ // closing quote
							break
						}
					} else {
						field.WriteByte(text[i])
						i++
					}
				}
			} else {
				for i < len(text) && text[i] != ',' && text[i] != '\n' && text[i] != '\r' {
					field.WriteByte(text[i])
					i++
				}
			}

			row = append(row, strings.TrimSpace(field.String()))

			if i < len(text) && text[i] == ',' {
				i++
				continue
			}
			if i < len(text) && text[i] == '\r' {
				i++
			}
			if i < len(text) && text[i] == '\n' {
				i++
			}
			break
		}

		if len(row) > 0 && !(len(row) == 1 && row[0] == "") {
			rows = append(rows, row)
		}
	}

	return rows
}

// cell returns the idx-th field of a row, tolerating short rows. Consumers
// index positionally and trailing optional columns are often missing.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
