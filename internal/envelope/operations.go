package envelope

// Family groups operations by the Glue resource they act on.
type Family string

const (
	FamilyCrawler    Family = "crawler"
	FamilyConnection Family = "connection"
)

// Operation identifies one forwarded Glue call.
type Operation string

const (
	OpCreateCrawler    Operation = "CreateCrawler"
	OpUpdateCrawler    Operation = "UpdateCrawler"
	OpGetCrawler       Operation = "GetCrawler"
	OpGetCrawlers      Operation = "GetCrawlers"
	OpListCrawlers     Operation = "ListCrawlers"
	OpStartCrawler     Operation = "StartCrawler"
	OpStopCrawler      Operation = "StopCrawler"
	OpCreateConnection Operation = "CreateConnection"
	OpUpdateConnection Operation = "UpdateConnection"
	OpGetConnection    Operation = "GetConnection"
	OpGetConnections   Operation = "GetConnections"
	OpDeleteConnection Operation = "DeleteConnection"
)

// Glue error codes recognised by at least one operation.
const (
	CodeInvalidInput          = "InvalidInputException"
	CodeAlreadyExists         = "AlreadyExistsException"
	CodeOperationTimeout      = "OperationTimeoutException"
	CodeResourceLimitExceeded = "ResourceNumberLimitExceededException"
	CodeEncryption            = "GlueEncryptionException"
	CodeVersionMismatch       = "VersionMismatchException"
	CodeEntityNotFound        = "EntityNotFoundException"
	CodeCrawlerRunning        = "CrawlerRunningException"
	CodeCrawlerNotRunning     = "CrawlerNotRunningException"
	CodeCrawlerStopping       = "CrawlerStoppingException"
)

// Rule describes how Map treats the outcome of one operation.
type Rule struct {
	Family Family
	// CheckStatus makes non-200 transport results map to Error envelopes.
	// Read, list, start and stop report Success for any completed call.
	CheckStatus bool
	// Codes is the allow-list of error codes surfaced with their detail.
	Codes map[string]struct{}
}

// Recognizes reports whether code is on the allow-list.
func (s Rule) Recognizes(code string) bool {
	_, ok := s.Codes[code]
	return ok
}

func codes(cs ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(cs))
	for _, c := range cs {
		m[c] = struct{}{}
	}
	return m
}

var readConnectionCodes = []string{CodeEntityNotFound, CodeOperationTimeout, CodeInvalidInput, CodeEncryption}

// rules is the (family, operation) → allow-list table consulted by Map.
var rules = map[Operation]Rule{
	OpCreateCrawler: {
		Family:      FamilyCrawler,
		CheckStatus: true,
		Codes:       codes(CodeInvalidInput, CodeAlreadyExists, CodeOperationTimeout, CodeResourceLimitExceeded),
	},
	OpUpdateCrawler: {
		Family:      FamilyCrawler,
		CheckStatus: true,
		Codes:       codes(CodeInvalidInput, CodeVersionMismatch, CodeEntityNotFound, CodeCrawlerRunning, CodeOperationTimeout),
	},
	OpGetCrawler: {
		Family: FamilyCrawler,
		Codes:  codes(CodeEntityNotFound, CodeOperationTimeout),
	},
	OpGetCrawlers: {
		Family: FamilyCrawler,
		Codes:  codes(CodeOperationTimeout),
	},
	OpListCrawlers: {
		Family: FamilyCrawler,
		Codes:  codes(CodeOperationTimeout),
	},
	OpStartCrawler: {
		Family: FamilyCrawler,
		Codes:  codes(CodeEntityNotFound, CodeCrawlerRunning, CodeOperationTimeout),
	},
	OpStopCrawler: {
		Family: FamilyCrawler,
		Codes:  codes(CodeEntityNotFound, CodeCrawlerNotRunning, CodeCrawlerStopping, CodeOperationTimeout),
	},
	OpCreateConnection: {
		Family:      FamilyConnection,
		CheckStatus: true,
		Codes:       codes(CodeInvalidInput, CodeAlreadyExists, CodeOperationTimeout, CodeResourceLimitExceeded, CodeEncryption),
	},
	OpUpdateConnection: {
		Family:      FamilyConnection,
		CheckStatus: true,
		Codes:       codes(CodeInvalidInput, CodeEntityNotFound, CodeOperationTimeout, CodeEncryption),
	},
	OpGetConnection: {
		Family: FamilyConnection,
		Codes:  codes(readConnectionCodes...),
	},
	OpGetConnections: {
		Family: FamilyConnection,
		Codes:  codes(readConnectionCodes...),
	},
	OpDeleteConnection: {
		Family:      FamilyConnection,
		CheckStatus: true,
		Codes:       codes(CodeEntityNotFound, CodeOperationTimeout),
	},
}

// Lookup returns the Rule registered for op.
func Lookup(op Operation) (Rule, bool) {
	s, ok := rules[op]
	return s, ok
}

// Operations returns every registered operation.
func Operations() []Operation {
	out := make([]Operation, 0, len(rules))
	for op := range rules {
		out = append(out, op)
	}
	return out
}
