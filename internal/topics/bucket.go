package topics

// Bucket groups topics by confidence rating for quota apportionment.
type Bucket string

const (
	BucketR1   Bucket = "r1"
	BucketR2   Bucket = "r2"
	BucketR3   Bucket = "r3"
	BucketExam Bucket = "exam"
)

// Buckets lists the buckets in their fixed selection and tie-break order.
var Buckets = []Bucket{BucketR1, BucketR2, BucketR3, BucketExam}

// BucketQuotas are the percentage shares of the eligible topics per bucket.
var BucketQuotas = map[Bucket]int{
	BucketR1:   45,
	BucketR2:   25,
	BucketR3:   20,
	BucketExam: 10,
}

// BucketFor maps a clamped 1-5 rating to its bucket.
func BucketFor(rating int) Bucket {
	switch {
	case rating <= 1:
		return BucketR1
	case rating == 2:
		return BucketR2
	case rating == 3:
		return BucketR3
	default:
		return BucketExam
	}
}
