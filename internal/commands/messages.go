package commands

// Fixed replies for precondition failures and empty results.
const (
	MsgSeeTermsNeedsTopic     = "Please look up a topic first, then ask to 'see terms'."
	MsgNoTermsUnderTopic      = "There are no terms under that topic yet."
	MsgExampleNeedsTerm       = "Please look up a term first, then ask to 'see example'."
	MsgNoExamples             = "There are no examples for this definition."
	MsgExamplesHeader         = "Here are the examples:"
	MsgDefinitionNeedsExample = "Please look at an example first, then ask to 'see definition'."
	MsgSelectionNeeded        = "There is nothing to choose between right now."
	MsgNoAssignmentStarted    = "You have not started any assignments. Say 'see assignments' first."
	MsgNoMoreAssignments      = "There are no more assignments."
	MsgNoPreviousAssignments  = "There are no previous assignments."
	MsgAssignmentsNeedContext = "Please look up a term or a topic first, then ask to 'see assignments'."
	MsgNoAssignments          = "There are no assignments for that."
	MsgAnswersNeedAssignment  = "Please open an assignment first, then ask to 'see answers'."
	MsgNoAnswers              = "There are no answers recorded for this assignment."
	MsgHelpNeedsContext       = "Please look up a term first so I know what you need help with."
	MsgHelpRequestSent        = "A help request has been sent to your teacher."
	MsgNoMaterials            = "I found no materials about that."
	MsgTopicsKnown            = "These are the topics I know about:"
)
