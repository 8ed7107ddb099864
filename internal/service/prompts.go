package service

import (
	"github.com/tmc/langchaingo/prompts"
)

const titleInstruction = `Based on our conversation, create a 2-10 word title that describes the main topic of the conversation. For example 'OpenAI Docs'.
The title SHOULD NOT contain introductions, punctuation, quotation marks, periods, symbols, or additional text.`

const summaryInstruction = `Summarize the discussion briefly in 200 words or less to use as a clue for context later. Keep the key points and every request the user made.`

// summaryContextPrefix introduces the rolling summary sent as a system message.
const summaryContextPrefix = "Summary of the earlier conversation:\n"

// noRelatedQuestions is what the model answers when it has no follow-up to offer.
const noRelatedQuestions = "NO_RELATED_QUESTIONS"

var ragPrompt = prompts.NewPromptTemplate(`You are a helpful assistant that answers the user's question using only the search results given below as context.
Write a complete but concise answer. Do not repeat information and keep a neutral, journalistic tone. Combine the search results into one coherent answer.
Answer in the user's language, or in the language of the question and the context. Use MARKDOWN. Cite the context you used with its reference number in the [citation:N] format. If a sentence draws on several contexts, list every citation, like [citation:3][citation:5].
REMEMBER: If the context holds no relevant information, just say "Hmm, it seems there is no answer to your question." and do not make up an answer.

Here is the context set:
{{.context}}

User question:
{{.question}}

User language:
{{.language}}

Helpful answer:`, []string{"context", "question", "language"})

var relatedQuestionsPrompt = prompts.NewPromptTemplate(`You are a helpful assistant who suggests follow-up questions based on the user's original question and the context below. Pick topics worth asking about next and write questions of at most 20 words each.
Spell out specific details such as events, names and places so each question stands on its own. For instance, if the original question is about the "Manhattan project", write "Manhattan project" in the follow-up and not just "the project". Write the questions in the user's language or in the language of the original question.
REMEMBER: Suggest two or three follow-up questions. Do not repeat the original question. Each question must not exceed 20 words. Number each question like "1.". Avoid special characters. If the context gives you nothing to build on, answer with "NO_RELATED_QUESTIONS".

Here is the context set:
{{.context}}

Here is the original question:
{{.question}}

Your answer:
{{.answer}}

User language:
{{.language}}

Related questions would be:`, []string{"context", "question", "answer", "language"})
