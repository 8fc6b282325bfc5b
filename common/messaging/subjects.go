package messaging

// Subject constants for the precinct message bus.
// Follow the pattern: {domain}.{resource}.{event}
const (
	SubjectRecordsArrestCreated       = "records.arrests.created"
	SubjectRecordsWantedCreated       = "records.wanted.created"
	SubjectRecordsWantedCaptured      = "records.wanted.captured"
	SubjectRecordsReportCreated       = "records.reports.created"
	SubjectRecordsInvestigationClosed = "records.investigations.finalized"
	SubjectRecordsFineCreated         = "records.fines.created"
	SubjectRecordsSeizureCreated      = "records.seizures.created"
	SubjectRecordsNewsPublished       = "records.news.published"
	SubjectRecordsLicenseRequested    = "records.licenses.requested"
	SubjectRecordsLicenseReviewed     = "records.licenses.reviewed"
	SubjectRecordsQuizSubmitted       = "records.quiz.submitted"
	SubjectRecordsUserCreated         = "records.users.created"
)

// Queue group names for load-balanced consumers.
// Workers in the same queue group share messages (each message processed once).
const (
	QueueNotifierWorkers = "notifier-workers"
)
