package edgar

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/jaideeprtx/nj-trades/pkg/utils"
)

// InfoTableRow is one position of a 13F information table.
type InfoTableRow struct {
	NameOfIssuer string
	CUSIP        string
	Value        int64 // thousands of dollars, as filed
	Shares       int64
}

// infoTableJSON accepts both the camelCase and upper-case column spellings.
type infoTableJSON struct {
	Data []struct {
		NameOfIssuer string  `json:"nameOfIssuer"`
		IssuerName   string  `json:"ISSUER_NAME"`
		CUSIP        string  `json:"cusip"`
		CUSIPUpper   string  `json:"CUSIP"`
		Value        flexInt `json:"value"`
		ValueUpper   flexInt `json:"VALUE"`
		Shares       flexInt `json:"SHARES"`
		ShrsOrPrnAmt struct {
			SshPrnamt flexInt `json:"sshPrnamt"`
		} `json:"shrsOrPrnAmt"`
	} `json:"data"`
}

type infoTableXML struct {
	Rows []struct {
		NameOfIssuer string `xml:"nameOfIssuer"`
		CUSIP        string `xml:"cusip"`
		Value        string `xml:"value"`
		ShrsOrPrnAmt struct {
			SshPrnamt string `xml:"sshPrnamt"`
		} `xml:"shrsOrPrnAmt"`
	} `xml:"infoTable"`
}

type filingIndex struct {
	Directory struct {
		Item []struct {
			Name string `json:"name"`
		} `json:"item"`
	} `json:"directory"`
}

func (c *Client) archiveURL(cik string, f Filing, name string) string {
	return fmt.Sprintf("%s/%s/%s/%s", c.cfg.ArchivesURL, utils.TrimCIK(cik), f.AccessionPath(), name)
}

// InfoTable fetches the information table of a 13F filing. The JSON rendering
// is tried first; when the archive has none the XML document listed in the
// filing index is parsed instead.
func (c *Client) InfoTable(ctx context.Context, cik string, f Filing) ([]InfoTableRow, error) {
	var doc infoTableJSON
	err := c.getJSON(ctx, c.archiveURL(cik, f, "infotable.json"), &doc)
	if err == nil {
		return rowsFromJSON(doc), nil
	}
	if !IsNotFound(err) {
		return nil, fmt.Errorf("sec 13f info table %s: %w", f.AccessionNumber, err)
	}
	return c.infoTableXML(ctx, cik, f)
}

func (c *Client) infoTableXML(ctx context.Context, cik string, f Filing) ([]InfoTableRow, error) {
	var idx filingIndex
	if err := c.getJSON(ctx, c.archiveURL(cik, f, "index.json"), &idx); err != nil {
		return nil, fmt.Errorf("sec filing index %s: %w", f.AccessionNumber, err)
	}

	name := ""
	for _, item := range idx.Directory.Item {
		n := strings.ToLower(item.Name)
		if strings.HasSuffix(n, ".xml") && n != "primary_doc.xml" && item.Name != f.PrimaryDocument {
			name = item.Name
			break
		}
	}
	if name == "" {
		return nil, fmt.Errorf("information table for %s: %w", f.AccessionNumber, ErrNoFiling)
	}

	raw, err := c.getRaw(ctx, c.archiveURL(cik, f, name), "application/xml")
	if err != nil {
		return nil, fmt.Errorf("sec 13f xml %s: %w", f.AccessionNumber, err)
	}
	return ParseInfoTableXML(raw)
}

// ParseInfoTableXML decodes an informationTable document. Namespaces are ignored.
// Rows whose value or share count does not parse are skipped.
func ParseInfoTableXML(raw []byte) ([]InfoTableRow, error) {
	var doc infoTableXML
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse information table: %w", err)
	}
	rows := make([]InfoTableRow, 0, len(doc.Rows))
	for _, r := range doc.Rows {
		var value, shares flexInt
		if value.UnmarshalJSON([]byte(r.Value)) != nil || shares.UnmarshalJSON([]byte(r.ShrsOrPrnAmt.SshPrnamt)) != nil {
			continue
		}
		rows = append(rows, InfoTableRow{
			NameOfIssuer: strings.TrimSpace(r.NameOfIssuer),
			CUSIP:        strings.ToUpper(strings.TrimSpace(r.CUSIP)),
			Value:        int64(value),
			Shares:       int64(shares),
		})
	}
	return rows, nil
}

func rowsFromJSON(doc infoTableJSON) []InfoTableRow {
	rows := make([]InfoTableRow, 0, len(doc.Data))
	for _, r := range doc.Data {
		row := InfoTableRow{
			NameOfIssuer: firstNonEmpty(r.NameOfIssuer, r.IssuerName),
			CUSIP:        strings.ToUpper(firstNonEmpty(r.CUSIP, r.CUSIPUpper)),
			Value:        int64(r.Value),
			Shares:       int64(r.ShrsOrPrnAmt.SshPrnamt),
		}
		if row.Value == 0 {
			row.Value = int64(r.ValueUpper)
		}
		if row.Shares == 0 {
			row.Shares = int64(r.Shares)
		}
		rows = append(rows, row)
	}
	return rows
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
