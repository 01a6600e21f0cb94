package console

const msgHelp = `Commands:
  <number>   choose a category from the menu
  A-F        select an answer
  Enter, n   confirm the answer and go to the next question
  r          restart with a fresh set of questions
  m          show the category menu
  q          quit`

const msgChooseCategory = `Choose a category:`

const msgLoading = `Loading questions...`

const msgRetry = `Press r to retry or m to choose another category.`

const msgComplete = `Quiz complete!`

const msgAfterComplete = `Press r to play again, m to choose another category or q to quit.`

const msgUnknownCommand = `Unknown command, type h for help.`

const msgNoCategory = `Choose a category first.`
