package googlebooks

import "encoding/xml"

// The volume feed is Atom with Dublin Core metadata elements. Only the
// fields the catalog stores are mapped; everything else is ignored.

type volumeFeed struct {
	XMLName xml.Name      `xml:"http://www.w3.org/2005/Atom feed"`
	Entries []volumeEntry `xml:"entry"`
}

type volumeEntry struct {
	Title        string   `xml:"http://www.w3.org/2005/Atom title"`
	Creators     []string `xml:"http://purl.org/dc/terms creator"`
	Date         string   `xml:"http://purl.org/dc/terms date"`
	Identifiers  []string `xml:"http://purl.org/dc/terms identifier"`
	Publisher    string   `xml:"http://purl.org/dc/terms publisher"`
	Descriptions []string `xml:"http://purl.org/dc/terms description"`
	Format       []string `xml:"http://purl.org/dc/terms format"`
	Subjects     []string `xml:"http://purl.org/dc/terms subject"`
}
