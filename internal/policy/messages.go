package policy

const (
	msgEmptyAnswer = "Write something before moving on, even if it is just " +
		"\"I don't know where to start\". An honest admission of confusion counts as an answer."

	msgRepeatedAnswer = "That is the same answer as before. Change the format: first say exactly " +
		"where you are stuck, then give a partial attempt, even if you think it is wrong."

	msgLowEffortEarly = "Tell me a bit more. What do you already understand about this step, " +
		"and where did the confusion begin?"

	msgLowEffortRetry = "Add some detail in 1 to 3 sentences. I am not looking for the right answer, " +
		"just evidence that you engaged with the step."

	msgTooManyAttempts = "You have tried this step several times. Before trying again, answer in two parts: " +
		"(1) the exact point where you got stuck and (2) the idea you originally tried."
)
