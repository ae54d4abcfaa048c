package summarize

var summaryPrompt = `Summarize the following blockchain news article for a professional
PDF report.

Write structured markdown:
- Open with a 2-4 sentence overview paragraph.
- Use ### subheadings for distinct aspects when the article covers more
  than one topic.
- Use bullet lists for key figures, dates, and takeaways.
- Bold the most important names and numbers.
- Quote notable statements with > blockquotes.

Keep the summary under 300 words. Do not invent facts that are not in
the article. Do not include a title heading; the report adds its own.

Follow this shape:` + "\n```\n" + `Overview paragraph here.

### Key Changes
- **Point one** with a figure
- Point two

> "A notable quote from the article."
` + "```\n"
