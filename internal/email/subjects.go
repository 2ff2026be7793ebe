package email

const (
	subjectQuoteProposalFmt = "Offerte %s van %s"
	subjectQuoteAcceptedFmt = "Offerte %s geaccepteerd"
	subjectQuoteThankYouFmt = "Bedankt voor uw akkoord - offerte %s"
)
