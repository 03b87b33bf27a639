// Package scraper fetches the ondebola schedule page and turns it into match records.
//
// A fetch is one HTTP GET with a fixed user agent and a 15 second timeout. The
// response is parsed with goquery and handed to the extract package; when the
// heading-anchored strategies find nothing, the visible text of the whole page is
// parsed instead. The batch is deduplicated on the first 200 characters of each
// record's raw line before it is returned.
//
// Transport problems (DNS, connection, timeout, non-2xx status) are reported as a
// *NetworkError that matches ErrNetwork. A page without a schedule is not an
// error: FetchMatches returns an empty batch.
package scraper
