package content

import "sort"

// Record is one content item under analysis. Arbitrary fields are carried
// through untouched; "likes" and "comments" feed the engagement metrics.
type Record map[string]any

// EngagementSummary aggregates engagement across a set of records.
type EngagementSummary struct {
	AvgLikes    float64 `json:"avgLikes"`
	AvgComments float64 `json:"avgComments"`

	// TopPerforming holds the top 3 records by likes+comments, each
	// annotated with a totalEngagement field. Ties keep input order.
	TopPerforming []Record `json:"topPerforming"`
}

// Analysis is the result of content analysis. Fields are populated
// according to the input shape and the requested analysis types.
type Analysis struct {
	ContentCount *int               `json:"contentCount,omitempty"`
	Engagement   *EngagementSummary `json:"engagement,omitempty"`
	Keywords     []WordCount        `json:"keywords,omitempty"`
	Hashtags     []string           `json:"hashtags,omitempty"`
	WordCount    *int               `json:"wordCount,omitempty"`
}

const topPerformingCount = 3

// AnalyzeRecords analyzes a collection of content records. Engagement
// metrics are computed when analysisTypes contains "engagement": likes and
// comments are parsed with ParseMetric, averaged, and the records are
// ranked by total engagement.
func AnalyzeRecords(records []Record, analysisTypes []string) Analysis {
	count := len(records)
	analysis := Analysis{ContentCount: &count}

	if !containsType(analysisTypes, "engagement") || count == 0 {
		return analysis
	}

	type scored struct {
		record Record
		total  int
	}

	var likesSum, commentsSum int
	ranked := make([]scored, 0, count)

	for _, record := range records {
		likes := ParseMetric(fieldString(record, "likes"))
		comments := ParseMetric(fieldString(record, "comments"))
		likesSum += likes
		commentsSum += comments

		annotated := make(Record, len(record)+1)
		for k, v := range record {
			annotated[k] = v
		}
		annotated["totalEngagement"] = likes + comments
		ranked = append(ranked, scored{record: annotated, total: likes + comments})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].total > ranked[j].total
	})
	if len(ranked) > topPerformingCount {
		ranked = ranked[:topPerformingCount]
	}

	top := make([]Record, 0, len(ranked))
	for _, s := range ranked {
		top = append(top, s.record)
	}

	analysis.Engagement = &EngagementSummary{
		AvgLikes:      float64(likesSum) / float64(count),
		AvgComments:   float64(commentsSum) / float64(count),
		TopPerforming: top,
	}
	return analysis
}

// AnalyzeText analyzes free text: top-10 keywords and hashtags when
// analysisTypes contains "keywords", plus the whitespace word count.
func AnalyzeText(text string, analysisTypes []string) Analysis {
	var analysis Analysis

	if containsType(analysisTypes, "keywords") {
		analysis.Keywords = TopWords(text, 10)
		analysis.Hashtags = ExtractHashtags(text)
	}

	words := CountWords(text)
	analysis.WordCount = &words
	return analysis
}

// DefaultAnalysisTypes is used when a request names no analysis types.
var DefaultAnalysisTypes = []string{"keywords", "engagement"}

func containsType(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}

// fieldString renders a record field for metric parsing. Numbers arrive
// from JSON as float64 and must round-trip without an exponent.
func fieldString(record Record, key string) string {
	v, ok := record[key]
	if !ok || v == nil {
		return ""
	}
	return stringify(v)
}
