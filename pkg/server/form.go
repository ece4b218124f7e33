package server

// uploadFormHTML is the single-page form served at the root route. Its field
// names are the ones ParseSubmission reads from the multipart body.
const uploadFormHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>tmpstash</title>
    <script src="https://cdn.tailwindcss.com"></script>
</head>
<body class="bg-gray-100 flex items-center justify-center min-h-screen">
    <div class="bg-white p-8 rounded-lg shadow-lg w-full max-w-md">
        <h1 class="text-2xl font-bold mb-6 text-center text-gray-800">tmpstash</h1>
        <form action="/upload" method="post" enctype="multipart/form-data" class="space-y-4">

            <!-- File input -->
            <div>
                <label class="block text-gray-700 font-medium mb-1" for="file">Select file</label>
                <input type="file" name="file" id="file" multiple required
                    class="block w-full text-gray-700 border border-gray-300 rounded-lg px-3 py-2 focus:outline-none focus:ring-2 focus:ring-blue-500" />
            </div>

            <!-- Identifier input -->
            <div>
                <label class="block text-gray-700 font-medium mb-1" for="identifier">Identifier</label>
                <input type="text" name="identifier" id="identifier" placeholder="File identifier"
                    class="block w-full text-gray-700 border border-gray-300 rounded-lg px-3 py-2 focus:outline-none focus:ring-2 focus:ring-blue-500" />
            </div>

            <!-- TTL selector -->
            <div>
                <label class="block text-gray-700 font-medium mb-1">Expiration (TTL)</label>
                <div class="flex space-x-2">
                    <input type="number" name="ttl_value" min="1" max="100" value="1"
                        class="w-1/2 text-gray-700 border border-gray-300 rounded-lg px-3 py-2 focus:outline-none focus:ring-2 focus:ring-blue-500" />
                    <select name="ttl_unit"
                        class="w-1/2 text-gray-700 border border-gray-300 rounded-lg px-3 py-2 focus:outline-none focus:ring-2 focus:ring-blue-500">
                        <option value="minutes">Minutes</option>
                        <option value="hours">Hours</option>
                    </select>
                </div>
            </div>

            <!-- Password input -->
            <div>
                <label class="block text-gray-700 font-medium mb-1" for="password">Password</label>
                <input type="password" name="password" id="password" required
                    class="block w-full text-gray-700 border border-gray-300 rounded-lg px-3 py-2 focus:outline-none focus:ring-2 focus:ring-blue-500" />
            </div>

            <!-- Submit button -->
            <button type="submit"
                class="w-full bg-blue-600 text-white font-bold py-2 px-4 rounded-lg hover:bg-blue-700 transition">
                Upload
            </button>
        </form>
    </div>
</body>
</html>
`
