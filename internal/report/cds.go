package report

import "github.com/unsaac-bioinfo/genostat/internal/extract"

// Sentinels used when a qualifier is absent, preserving the artifact
// shape of the original tables.
const (
	NAValue      = "NA"
	UnknownValue = "Unknown"
)

// CDSHeader is the column set of the per-CDS tables.
var CDSHeader = []string{
	"locus_tag", "gene", "product", "start", "end",
	"length_nt", "length_aa", "strand", "protein_id",
}

// CDSRow flattens one CDS record into CSV cells.
func CDSRow(r extract.CDSRecord) []string {
	return []string{
		r.LocusTag.Or(NAValue),
		r.Gene.Or(NAValue),
		r.Product.Or(UnknownValue),
		Itoa(r.Start),
		Itoa(r.End),
		Itoa(r.LengthNT),
		Itoa(r.LengthAA),
		r.Strand.String(),
		r.ProteinID.Or(NAValue),
	}
}

// CDSRows flattens all CDS records in order.
func CDSRows(records []extract.CDSRecord) [][]string {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = CDSRow(r)
	}
	return rows
}
